package boltdb

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"notes-keeper/internal/store"
)

// DefaultBucket - имя bucket по умолчанию
const DefaultBucket = "notes"

var _ store.Backend = (*Store)(nil)

// Store хранит пары key/value в одном bucket файла BoltDB
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// NewStore открывает (или создает) файл BoltDB и гарантирует наличие bucket
func NewStore(path, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt.Open: %w", err)
	}

	s := &Store{db: db, bucket: []byte(bucket)}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
	}

	return s, nil
}

// Close закрывает базу и освобождает файловую блокировку
func (s *Store) Close() error {
	return s.db.Close()
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.Failure("bolt get", key, err)
	}

	var (
		value  string
		exists bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Срез валиден только внутри транзакции, поэтому копируем в string
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			value, exists = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, store.Failure("bolt get", key, err)
	}

	return value, exists, nil
}

// Set сохраняет значение по ключу
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return store.Failure("bolt set", key, err)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
	return store.Failure("bolt set", key, err)
}

// Delete удаляет ключ
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return store.Failure("bolt delete", key, err)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	return store.Failure("bolt delete", key, err)
}

// Keys возвращает ключи в порядке bucket (по возрастанию байтов)
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Failure("bolt keys", "", err)
	}

	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, store.Failure("bolt keys", "", err)
	}

	return keys, nil
}
