package converter

import (
	"encoding/json"
	"errors"
	"fmt"

	"notes-keeper/internal/model"
)

// ErrMalformedRecord возвращается, когда сохраненная запись не соответствует форме заметки
var ErrMalformedRecord = errors.New("malformed note record")

// record - плоская форма заметки в хранилище.
// Указатели позволяют отличить отсутствующее поле от нулевого значения.
type record struct {
	ID        *string     `json:"id"`
	Name      *string     `json:"name"`
	Important *bool       `json:"important"`
	Content   *string     `json:"content"`
	Info      *legacyInfo `json:"info,omitempty"`
}

// legacyInfo - метаданные в ранней вложенной форме {"info":{...},"content":"..."}
type legacyInfo struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	Important *bool   `json:"important"`
}

// flatRecord - форма записи при сохранении
type flatRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Important bool   `json:"important"`
	Content   string `json:"content"`
}

// ModelToRecord сериализует заметку в плоский JSON объект из четырех полей
func ModelToRecord(note model.Note) (string, error) {
	data, err := json.Marshal(flatRecord{
		ID:        note.ID,
		Name:      note.Name,
		Important: note.Important,
		Content:   note.Content,
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}

// RecordToModel разбирает запись из хранилища.
// Понимает и плоскую форму, и раннюю вложенную; любое отсутствующее поле - ErrMalformedRecord.
func RecordToModel(payload string) (model.Note, error) {
	var r record
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return model.Note{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if r.Info != nil {
		r.ID, r.Name, r.Important = r.Info.ID, r.Info.Name, r.Info.Important
	}

	switch {
	case r.ID == nil || *r.ID == "":
		return model.Note{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	case r.Name == nil:
		return model.Note{}, fmt.Errorf("%w: missing name", ErrMalformedRecord)
	case r.Important == nil:
		return model.Note{}, fmt.Errorf("%w: missing important", ErrMalformedRecord)
	case r.Content == nil:
		return model.Note{}, fmt.Errorf("%w: missing content", ErrMalformedRecord)
	}

	return model.Note{
		ID:        *r.ID,
		Name:      *r.Name,
		Important: *r.Important,
		Content:   *r.Content,
	}, nil
}
