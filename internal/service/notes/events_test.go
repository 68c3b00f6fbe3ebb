package notes

import (
	"testing"

	"notes-keeper/internal/model"
)

func TestEventService_PublishToSubscribers(t *testing.T) {
	events := NewEventService()
	first := events.Subscribe()
	second := events.Subscribe()

	if events.Subscribers() != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", events.Subscribers())
	}

	events.Publish(model.Event{Type: model.EventSaved, Note: model.NoteInfo{ID: "1"}})

	for _, ch := range []chan model.Event{first, second} {
		event := <-ch
		if event.Type != model.EventSaved || event.Note.ID != "1" {
			t.Errorf("Unexpected event: %+v", event)
		}
	}
}

func TestEventService_UnsubscribeClosesChannel(t *testing.T) {
	events := NewEventService()
	ch := events.Subscribe()

	events.Unsubscribe(ch)
	events.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("Expected channel to be closed")
	}

	if events.Subscribers() != 0 {
		t.Errorf("Expected no subscribers, got %d", events.Subscribers())
	}

	// Публикация без подписчиков не должна паниковать
	events.Publish(model.Event{Type: model.EventDeleted})
}

func TestEventService_SlowSubscriberDropsEvents(t *testing.T) {
	events := NewEventService()
	ch := events.Subscribe()
	defer events.Unsubscribe(ch)

	for i := 0; i < cap(ch)+10; i++ {
		events.Publish(model.Event{Type: model.EventSaved})
	}

	if len(ch) != cap(ch) {
		t.Errorf("Expected buffer to be full, got %d of %d", len(ch), cap(ch))
	}
}
