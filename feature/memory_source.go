package feature

import (
	"context"
	"sync"

	"github.com/rushteam/softrank/core"
)

// MemorySource 是内存实现的特征来源，用于测试/开发/原型。
type MemorySource struct {
	mu   sync.RWMutex
	data map[string]map[string]float64
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		data: make(map[string]map[string]float64),
	}
}

func (s *MemorySource) Name() string { return "feature.memory" }

// Put 写入某个文档的特征（覆盖同名特征）。
func (s *MemorySource) Put(docID string, features map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[docID] == nil {
		s.data[docID] = make(map[string]float64, len(features))
	}
	for k, v := range features {
		s.data[docID][k] = v
	}
}

func (s *MemorySource) GetDocFeatures(_ context.Context, docIDs []string) (map[string]map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]map[string]float64, len(docIDs))
	for _, id := range docIDs {
		features, ok := s.data[id]
		if !ok {
			continue
		}
		cp := make(map[string]float64, len(features))
		for k, v := range features {
			cp[k] = v
		}
		result[id] = cp
	}
	return result, nil
}

var _ core.FeatureSource = (*MemorySource)(nil)
