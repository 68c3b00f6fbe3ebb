package model

import "time"

// EventType - тип события изменения заметок
type EventType string

const (
	EventCreated   EventType = "created"
	EventSaved     EventType = "saved"
	EventRenamed   EventType = "renamed"
	EventImportant EventType = "important"
	EventDeleted   EventType = "deleted"
	EventSelected  EventType = "selected"
)

// Event описывает изменение, произошедшее с заметкой
type Event struct {
	Type EventType
	Note NoteInfo
	At   time.Time
}
