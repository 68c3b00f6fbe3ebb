package converter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-keeper/internal/model"
)

func TestRecord_RoundTrip(t *testing.T) {
	notes := []model.Note{
		{ID: "1", Name: "Todo", Important: false, Content: ""},
		{ID: "2", Name: "", Important: true, Content: "line1\nline2"},
		{ID: "3", Name: "Заметка", Important: true, Content: `{"not":"json"}`},
	}

	for _, note := range notes {
		payload, err := ModelToRecord(note)
		require.NoError(t, err)

		got, err := RecordToModel(payload)
		require.NoError(t, err)
		assert.Equal(t, note, got, "Expected round-trip for %+v", note)
	}
}

func TestModelToRecord_FlatShape(t *testing.T) {
	payload, err := ModelToRecord(model.Note{ID: "id-1", Name: "n", Important: true, Content: ""})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &fields))

	assert.Len(t, fields, 4, "Expected exactly four fields")
	assert.Equal(t, "id-1", fields["id"])
	assert.Equal(t, "n", fields["name"])
	assert.Equal(t, true, fields["important"])
	assert.Equal(t, "", fields["content"])
}

func TestRecordToModel_LegacyNestedShape(t *testing.T) {
	payload := `{"info":{"id":"old-1","name":"Old","important":true},"content":"body"}`

	note, err := RecordToModel(payload)

	require.NoError(t, err)
	assert.Equal(t, model.Note{ID: "old-1", Name: "Old", Important: true, Content: "body"}, note)
}

func TestRecordToModel_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "not json at all"},
		{"json array", `[1,2,3]`},
		{"json null", `null`},
		{"missing id", `{"name":"a","important":false,"content":""}`},
		{"empty id", `{"id":"","name":"a","important":false,"content":""}`},
		{"missing name", `{"id":"1","important":false,"content":""}`},
		{"missing important", `{"id":"1","name":"a","content":""}`},
		{"missing content", `{"id":"1","name":"a","important":false}`},
		{"wrong type", `{"id":"1","name":"a","important":"yes","content":""}`},
		{"legacy without content", `{"info":{"id":"1","name":"a","important":false}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := RecordToModel(tt.payload)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord), "Expected ErrMalformedRecord, got %v", err)
			assert.Equal(t, model.Note{}, note, "Expected empty note on error")
		})
	}
}
