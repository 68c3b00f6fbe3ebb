package repository

import (
	"context"
	"errors"

	"notes-keeper/internal/model"
)

var (
	// ErrNoteNotFound возвращается, когда заметки с указанным ID нет в хранилище
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoteCorrupt возвращается, когда сохраненная запись не разбирается в заметку.
	// Запись при этом остается нетронутой.
	ErrNoteCorrupt = errors.New("note record is corrupt")
)

// NoteRepository интерфейс для работы с записями заметок в хранилище
type NoteRepository interface {
	// CreateWithName создает заметку с новым ID, пустым содержимым и сразу сохраняет её
	CreateWithName(ctx context.Context, name string) (model.Note, error)

	// LoadByID читает заметку по ID (ErrNoteNotFound, ErrNoteCorrupt)
	LoadByID(ctx context.Context, id string) (model.Note, error)

	// Save записывает все поля заметки; последняя запись побеждает
	Save(ctx context.Context, note model.Note) error

	// Delete удаляет запись заметки без следов
	Delete(ctx context.Context, id string) error

	// List возвращает все заметки в порядке перечисления ключей хранилища
	List(ctx context.Context) ([]model.Note, error)

	// Usage возвращает занятый хранилищем объем в байтах
	Usage(ctx context.Context) (int64, error)
}
