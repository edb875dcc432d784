// Package softrank 是一个可微排序工具包（Soft Ranking Kit）。
//
// 设计要点：
// - 可微排名: 用平滑比较（sigmoid / 高斯 CDF / 软置换 / 窗口化）把离散排名变成可导函数
// - 解析梯度: 排名对输入分数的 Jacobian 有闭式解，列表级损失直接链式求导
// - Pipeline-first: 训练数据准备通过 Node 串联（Filter → Feature → Score → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package softrank

import (
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/soft"
)

// 轻量 facade：便于用户直接 import "softrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter  = pipeline.KindFilter
	KindFeature = pipeline.KindFeature
	KindScore   = pipeline.KindScore
	KindReRank  = pipeline.KindReRank
)

// Method 是排名近似方法。
type Method = soft.Method

const (
	MethodSigmoid     = soft.MethodSigmoid
	MethodCDF         = soft.MethodCDF
	MethodPermutation = soft.MethodPermutation
	MethodWindowed    = soft.MethodWindowed
)
