package game

import "github.com/jacl-coder/PixelStorm-Survival/internal/models"

// store 按插入顺序遍历的实体表
// 删除只从map中移除，order在每个tick末尾统一压缩
type store[T models.Entity] struct {
	items map[string]T
	order []string
}

func newStore[T models.Entity]() *store[T] {
	return &store[T]{items: make(map[string]T)}
}

func (s *store[T]) add(e T) {
	id := e.GetID()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = e
}

func (s *store[T]) get(id string) (T, bool) {
	e, ok := s.items[id]
	return e, ok
}

func (s *store[T]) remove(id string) {
	delete(s.items, id)
}

func (s *store[T]) len() int {
	return len(s.items)
}

// each 按插入顺序遍历；遍历期间新加入的实体本轮不会被访问
func (s *store[T]) each(fn func(T)) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		if e, ok := s.items[s.order[i]]; ok {
			fn(e)
		}
	}
}

// compact 清理order中已删除的ID
func (s *store[T]) compact() {
	if len(s.order) == len(s.items) {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := s.items[id]; ok {
			kept = append(kept, id)
		}
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = ""
	}
	s.order = kept
}
