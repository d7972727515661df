// Package counter сводит буферизованные дельты счётчика постов в
// долговременное значение boards.post_count.
package counter

//go:generate mockgen -source=delta.go -destination=../mocks/mock_delta.go -package=mocks

import (
	"context"
	"sync"
)

// DeltaStore — быстрый общий буфер знаковых дельт по ID сущности.
type DeltaStore interface {
	// Add атомарно прибавляет delta к буферу сущности.
	Add(ctx context.Context, entityID int64, delta int64) error
	// Pending возвращает ненулевые дельты.
	Pending(ctx context.Context) (map[int64]int64, error)
	// Settle вычитает из буфера ровно applied; обнулившийся ключ удаляется.
	Settle(ctx context.Context, entityID int64, applied int64) error
}

// MemoryStore — DeltaStore в памяти процесса. Перед использованием
// вызывается Init; неявного освобождения нет.
type MemoryStore struct {
	mu     sync.Mutex
	deltas map[int64]int64
}

// NewMemoryStore возвращает инициализированный буфер.
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{}
	m.Init()
	return m
}

// Init сбрасывает буфер в пустое состояние.
func (m *MemoryStore) Init() {
	m.mu.Lock()
	m.deltas = make(map[int64]int64)
	m.mu.Unlock()
}

func (m *MemoryStore) Add(ctx context.Context, entityID int64, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apply(entityID, delta)

	return nil
}

func (m *MemoryStore) Pending(ctx context.Context) (map[int64]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int64]int64, len(m.deltas))
	for id, d := range m.deltas {
		if d != 0 {
			out[id] = d
		}
	}

	return out, nil
}

func (m *MemoryStore) Settle(ctx context.Context, entityID int64, applied int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apply(entityID, -applied)

	return nil
}

// apply вызывается под m.mu.
func (m *MemoryStore) apply(entityID int64, delta int64) {
	if m.deltas == nil {
		m.deltas = make(map[int64]int64)
	}

	v := m.deltas[entityID] + delta
	if v == 0 {
		delete(m.deltas, entityID)
		return
	}

	m.deltas[entityID] = v
}
