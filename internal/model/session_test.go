package model

import "testing"

func TestSession_SelectAndClear(t *testing.T) {
	s := &Session{}
	if s.HasCurrent() {
		t.Fatal("Expected new session to have no current note")
	}

	s.Dirty = true
	s.Select("42")
	if !s.HasCurrent() || s.CurrentID != "42" {
		t.Errorf("Expected current note 42, got %q", s.CurrentID)
	}
	if s.Dirty {
		t.Error("Expected Select to reset dirty flag")
	}

	s.Dirty = true
	s.Clear()
	if s.HasCurrent() || s.Dirty {
		t.Errorf("Expected cleared session, got %+v", s)
	}
}

func TestNote_Info(t *testing.T) {
	note := Note{ID: "1", Name: "Todo", Important: true, Content: "body"}

	info := note.Info()

	if info != (NoteInfo{ID: "1", Name: "Todo", Important: true}) {
		t.Errorf("Unexpected info: %+v", info)
	}
}
