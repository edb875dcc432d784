package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 参数校验错误：INVALID_REGULARIZATION, LENGTH_MISMATCH, INVALID_TOPK
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 其他领域错误
//
// 注意：数据级异常（NaN/Inf 元素、零方差、零有效比较数）不是错误，
// 由各算子以确定的回退值就地处理，不通过 DomainError 上抛。
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_REGULARIZATION", "LENGTH_MISMATCH"）
	Message string // 错误消息
	Module  string // 模块名称（如 "soft", "loss", "learn", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 参数校验错误代码
	ErrorCodeInvalidRegularization = "INVALID_REGULARIZATION" // alpha 非正或非有限
	ErrorCodeLengthMismatch        = "LENGTH_MISMATCH"        // 成对输入长度不一致
	ErrorCodeEmptyInput            = "EMPTY_INPUT"            // 输入为空（仅对要求非空的算子）
	ErrorCodeInvalidTopK           = "INVALID_TOPK"           // top-k / 截断参数无效
	ErrorCodeInvalidInput          = "INVALID_INPUT"          // 输入无效

	// 通用错误代码
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED" // 操作不支持
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 服务不可用
)

// 模块名称常量
const (
	ModuleSoft    = "soft"    // 可微排序算子模块
	ModuleLoss    = "loss"    // 损失函数模块
	ModuleLearn   = "learn"   // 训练模块
	ModuleStore   = "store"   // 存储模块
	ModuleFeature = "feature" // 特征模块
)

// 通用错误检查函数

// IsInvalidRegularization 检查错误是否为 INVALID_REGULARIZATION
func IsInvalidRegularization(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidRegularization
	}
	return false
}

// IsLengthMismatch 检查错误是否为 LENGTH_MISMATCH
func IsLengthMismatch(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeLengthMismatch
	}
	return false
}

// IsEmptyInput 检查错误是否为 EMPTY_INPUT
func IsEmptyInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyInput
	}
	return false
}

// IsInvalidTopK 检查错误是否为 INVALID_TOPK
func IsInvalidTopK(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidTopK
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// ErrStoreNotFound 是 Store 层 key 不存在的哨兵错误。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")
