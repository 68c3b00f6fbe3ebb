package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"notes-keeper/internal/converter"
	"notes-keeper/internal/model"
	"notes-keeper/internal/repository"
	"notes-keeper/internal/store"
)

// KeyPrefix - префикс ключей заметок в хранилище: note:<id>
const KeyPrefix = "note:"

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	kv    store.Store
	newID func() string
}

// NewRepository создает репозиторий заметок поверх key/value хранилища
func NewRepository(kv store.Store) repository.NoteRepository {
	return &repo{
		kv:    kv,
		newID: uuid.NewString,
	}
}

// Key возвращает ключ хранилища для заметки
func Key(id string) string {
	return KeyPrefix + id
}

// CreateWithName создает заметку с новым ID, пустым содержимым и сразу сохраняет её
func (r *repo) CreateWithName(ctx context.Context, name string) (model.Note, error) {
	note := model.Note{
		ID:   r.newID(),
		Name: name,
	}

	if err := r.Save(ctx, note); err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// LoadByID читает и разбирает запись заметки
func (r *repo) LoadByID(ctx context.Context, id string) (model.Note, error) {
	payload, exists, err := r.kv.Get(ctx, Key(id))
	if err != nil {
		return model.Note{}, fmt.Errorf("load note %s: %w", id, err)
	}
	if !exists {
		return model.Note{}, fmt.Errorf("%w: %s", repository.ErrNoteNotFound, id)
	}

	return decode(id, payload)
}

// Save сериализует все четыре поля и пишет их одной записью
func (r *repo) Save(ctx context.Context, note model.Note) error {
	if note.ID == "" {
		return errors.New("id cannot be empty")
	}

	payload, err := converter.ModelToRecord(note)
	if err != nil {
		return fmt.Errorf("encode note %s: %w: %w", note.ID, store.ErrStorageFailure, err)
	}

	if err := r.kv.Set(ctx, Key(note.ID), payload); err != nil {
		return fmt.Errorf("save note %s: %w", note.ID, err)
	}

	return nil
}

// Delete удаляет запись заметки
func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.kv.Delete(ctx, Key(id)); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}

	return nil
}

// List перечисляет все ключи с префиксом note: и разбирает каждую запись.
// Ключи без префикса (например, устаревший noteindex) пропускаются.
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	keys, err := r.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]model.Note, 0, len(keys))
	for _, key := range keys {
		id, ok := strings.CutPrefix(key, KeyPrefix)
		if !ok {
			continue
		}

		payload, exists, err := r.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		if !exists {
			// Ключ исчез между Keys и Get
			continue
		}

		note, err := decode(id, payload)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// Usage возвращает занятый хранилищем объем в байтах
func (r *repo) Usage(ctx context.Context) (int64, error) {
	used, err := store.Usage(ctx, r.kv)
	if err != nil {
		return 0, fmt.Errorf("storage usage: %w", err)
	}

	return used, nil
}

// decode разбирает запись и сверяет ID в записи с ключом
func decode(id, payload string) (model.Note, error) {
	note, err := converter.RecordToModel(payload)
	if err != nil {
		return model.Note{}, fmt.Errorf("%w: %s: %w", repository.ErrNoteCorrupt, id, err)
	}
	if note.ID != id {
		return model.Note{}, fmt.Errorf("%w: %s: record id %q does not match key", repository.ErrNoteCorrupt, id, note.ID)
	}

	return note, nil
}
