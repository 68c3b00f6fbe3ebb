package notes

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	svc "notes-keeper/internal/service"
)

// Option настраивает сервис заметок
type Option func(*service)

// WithLogger задает логгер сервиса
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocale задает локаль для сравнения имен при сортировке
func WithLocale(tag language.Tag) Option {
	return func(s *service) {
		s.locale = tag
	}
}

// WithEvents подключает шину событий
func WithEvents(events svc.EventBus) Option {
	return func(s *service) {
		s.events = events
	}
}

// WithClock подменяет источник времени (имена новых заметок, время событий)
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}
