package service

import (
	"context"

	"notes-keeper/internal/model"
)

// NoteService интерфейс бизнес-логики заметок: выбор текущей заметки и CRUD.
// Состояние выбора хранится в model.Session, которым владеет вызывающий слой;
// сервис кэширует только то, что лежит в хранилище.
type NoteService interface {
	// Init выбирает первую заметку отсортированного списка; true - заметка выбрана
	Init(ctx context.Context, s *model.Session) (bool, error)

	// CreateWithName создает и сразу сохраняет новую заметку
	CreateWithName(ctx context.Context, name string) (model.Note, error)

	// AddNote сохраняет заметку и делает её текущей
	AddNote(ctx context.Context, s *model.Session, note model.Note) error

	// NewNote создает заметку по имени из поля ввода и делает её текущей.
	// Пустое имя заменяется текущим временем.
	NewNote(ctx context.Context, s *model.Session, name string) (model.Note, error)

	// CurrentNote заново читает текущую заметку из хранилища; ok=false - ничего не выбрано
	CurrentNote(ctx context.Context, s *model.Session) (note model.Note, ok bool, err error)

	// SetCurrentID меняет выбор без обращения к хранилищу ("" - снять выбор)
	SetCurrentID(s *model.Session, id string)

	// SelectNote сохраняет несохраненное содержимое текущей заметки и выбирает заметку id
	SelectNote(ctx context.Context, s *model.Session, id, content string) (model.Note, error)

	// SaveCurrentNote записывает имя (если передано и изменилось) и содержимое одной записью.
	// false - нет текущей заметки
	SaveCurrentNote(ctx context.Context, s *model.Session, newName *string, content string) (bool, error)

	// DeleteCurrentNote удаляет текущую заметку и выбирает первую оставшуюся.
	// Возвращает, есть ли текущая заметка после удаления (true, если удалять было нечего)
	DeleteCurrentNote(ctx context.Context, s *model.Session) (bool, error)

	// ToggleCurrentNoteImportant переключает флаг важности; false - нет текущей заметки
	ToggleCurrentNoteImportant(ctx context.Context, s *model.Session) (bool, error)

	// SortedNoteList возвращает метаданные всех заметок, отсортированные по имени
	SortedNoteList(ctx context.Context) ([]model.NoteInfo, error)

	// Usage возвращает занятый хранилищем объем в байтах
	Usage(ctx context.Context) (int64, error)
}

// EventBus рассылает события изменения заметок подписчикам
type EventBus interface {
	Subscribe() chan model.Event
	Unsubscribe(ch chan model.Event)
	Publish(event model.Event)
}
