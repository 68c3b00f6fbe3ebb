package converter

import (
	"notes-keeper/internal/model"
	notesv1 "notes-keeper/pkg/api/notes/v1"
)

// ModelToAPI конвертирует domain модель Note в API
func ModelToAPI(note model.Note) *notesv1.Note {
	return &notesv1.Note{
		Id:        note.ID,
		Name:      note.Name,
		Important: note.Important,
		Content:   note.Content,
	}
}

// InfoToAPI конвертирует метаданные заметки в API
func InfoToAPI(info model.NoteInfo) *notesv1.NoteInfo {
	return &notesv1.NoteInfo{
		Id:        info.ID,
		Name:      info.Name,
		Important: info.Important,
	}
}

// InfosToAPI конвертирует слайс метаданных в слайс API.
// Пустой список остается пустым слайсом, чтобы в JSON получился [], а не null.
func InfosToAPI(infos []model.NoteInfo) []*notesv1.NoteInfo {
	apiInfos := make([]*notesv1.NoteInfo, len(infos))
	for i, info := range infos {
		apiInfos[i] = InfoToAPI(info)
	}

	return apiInfos
}

// EventToAPI конвертирует доменное событие в событие стрима
func EventToAPI(event model.Event) *notesv1.Event {
	return &notesv1.Event{
		Type:      string(event.Type),
		Note:      InfoToAPI(event.Note),
		Timestamp: event.At,
	}
}
