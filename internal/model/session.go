package model

// Session - явное состояние сессии, принадлежащее вызывающему слою.
// Сервис заметок не хранит выбор сам: состояние передается в каждую операцию.
type Session struct {
	CurrentID string // ID текущей заметки, "" - нет выбранной заметки
	Dirty     bool   // В редакторе есть несохраненные изменения
}

// HasCurrent сообщает, выбрана ли текущая заметка
func (s *Session) HasCurrent() bool {
	return s.CurrentID != ""
}

// Select делает заметку с указанным ID текущей
func (s *Session) Select(id string) {
	s.CurrentID = id
	s.Dirty = false
}

// Clear сбрасывает выбор
func (s *Session) Clear() {
	s.CurrentID = ""
	s.Dirty = false
}
