// Package store описывает долговременное key/value хранилище, через которое
// сохраняются заметки, и общие для всех адаптеров ошибки.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrStorageFailure оборачивает любую ошибку нижележащего хранилища
	ErrStorageFailure = errors.New("storage failure")

	// ErrQuotaExceeded возвращается, когда запись превышает квоту хранилища
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store - синхронное key/value хранилище.
//
// Get для отсутствующего ключа возвращает ok=false и nil ошибку.
// Delete отсутствующего ключа не является ошибкой.
// Keys возвращает ключи в детерминированном порядке (все адаптеры - по возрастанию байтов).
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Backend - хранилище, которое нужно закрыть после использования
type Backend interface {
	Store
	io.Closer
}

// Failure оборачивает ошибку адаптера так, чтобы errors.Is(err, ErrStorageFailure) была истинной
func Failure(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if key == "" {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
	}
	return fmt.Errorf("%s %q: %w: %w", op, key, ErrStorageFailure, err)
}

// Usage считает суммарный размер всех значений в байтах (UTF-8)
func Usage(ctx context.Context, s Store) (int64, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, key := range keys {
		value, ok, err := s.Get(ctx, key)
		if err != nil {
			return 0, err
		}
		if ok {
			total += int64(len(value))
		}
	}

	return total, nil
}

// FormatKB форматирует размер в килобайтах с двумя знаками после запятой
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1024)
}
