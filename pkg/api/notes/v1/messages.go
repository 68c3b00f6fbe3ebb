package notesv1

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength - максимальная длина имени заметки в символах
const MaxNameLength = 255

// Note - заметка целиком
type Note struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Important bool   `json:"important"`
	Content   string `json:"content"`
}

// NoteInfo - строка отсортированного списка заметок
type NoteInfo struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Important bool   `json:"important"`
}

type InitRequest struct{}

type InitResponse struct {
	HasNote bool  `json:"has_note"`
	Current *Note `json:"current,omitempty"`
}

type NewNoteRequest struct {
	Name string `json:"name"` // Пустое имя заменяется текущим временем
}

func (r *NewNoteRequest) Validate() error {
	return validateName(r.Name)
}

type NewNoteResponse struct {
	Note *Note `json:"note"`
}

type GetCurrentNoteRequest struct{}

type GetCurrentNoteResponse struct {
	Note *Note `json:"note,omitempty"` // nil - нет текущей заметки
}

type SelectNoteRequest struct {
	Id      string `json:"id"`
	Content string `json:"content"` // Содержимое редактора для сохранения текущей заметки, если она изменена
}

func (r *SelectNoteRequest) Validate() error {
	if strings.TrimSpace(r.Id) == "" {
		return errors.New("id cannot be empty")
	}
	return nil
}

type SelectNoteResponse struct {
	Note *Note `json:"note"`
}

type SaveCurrentNoteRequest struct {
	Name    *string `json:"name,omitempty"` // nil - имя не меняется
	Content string  `json:"content"`
}

func (r *SaveCurrentNoteRequest) Validate() error {
	if r.Name == nil {
		return nil
	}
	return validateName(*r.Name)
}

type SaveCurrentNoteResponse struct {
	Saved bool  `json:"saved"`
	Note  *Note `json:"note,omitempty"`
}

type DeleteCurrentNoteRequest struct{}

type DeleteCurrentNoteResponse struct {
	HasNote bool  `json:"has_note"`
	Current *Note `json:"current,omitempty"`
}

type ToggleImportantRequest struct{}

type ToggleImportantResponse struct {
	Toggled bool  `json:"toggled"`
	Note    *Note `json:"note,omitempty"`
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes     []*NoteInfo `json:"notes"`
	CurrentId string      `json:"current_id,omitempty"`
}

type GetUsageRequest struct{}

type GetUsageResponse struct {
	Bytes     int64  `json:"bytes"`
	Kilobytes string `json:"kilobytes"`
}

type MarkDirtyRequest struct {
	Dirty bool `json:"dirty"`
}

type MarkDirtyResponse struct {
	Dirty bool `json:"dirty"`
}

type WatchEventsRequest struct{}

// Event - событие стрима WatchEvents.
// Type "heartbeat" приходит при подключении и периодически, остальные типы
// соответствуют изменениям заметок (created, saved, renamed, important, deleted, selected).
type Event struct {
	Type      string    `json:"type"`
	Note      *NoteInfo `json:"note,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHeartbeat - тип служебного события
const EventHeartbeat = "heartbeat"

func validateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.New("name is too long")
	}
	return nil
}
