package memory

import (
	"context"
	"sort"
	"sync"

	"notes-keeper/internal/store"
)

var _ store.Backend = (*kv)(nil)

type kv struct {
	mu    sync.RWMutex
	data  map[string]string
	used  int64
	quota int64
}

// NewStore создает новый экземпляр in-memory хранилища на основе map.
// quota ограничивает суммарный размер значений в байтах, 0 - без ограничения.
func NewStore(quota int64) store.Backend {
	return &kv{
		data:  make(map[string]string),
		quota: quota,
	}
}

// Get возвращает значение по ключу
func (s *kv) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.Failure("memory get", key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	return value, exists, nil
}

// Set сохраняет значение по ключу, проверяя квоту.
// При превышении квоты предыдущее значение остается нетронутым.
func (s *kv) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return store.Failure("memory set", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used - int64(len(s.data[key])) + int64(len(value))
	if s.quota > 0 && used > s.quota {
		return store.Failure("memory set", key, store.ErrQuotaExceeded)
	}

	s.data[key] = value
	s.used = used

	return nil
}

// Delete удаляет ключ, отсутствие ключа ошибкой не считается
func (s *kv) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return store.Failure("memory delete", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if value, exists := s.data[key]; exists {
		s.used -= int64(len(value))
		delete(s.data, key)
	}

	return nil
}

// Keys возвращает все ключи в порядке возрастания
func (s *kv) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Failure("memory keys", "", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

// Close ничего не делает: данные живут до конца процесса
func (s *kv) Close() error {
	return nil
}
