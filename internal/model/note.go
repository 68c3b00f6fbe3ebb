package model

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string // UUID заметки, неизменяем после создания
	Name      string // Отображаемое имя, единственный ключ сортировки (дубликаты допустимы)
	Important bool   // Флаг важности
	Content   string // Текст заметки
}

// NoteInfo - метаданные заметки для отсортированного списка
type NoteInfo struct {
	ID        string
	Name      string
	Important bool
}

// Info возвращает метаданные заметки
func (n Note) Info() NoteInfo {
	return NoteInfo{
		ID:        n.ID,
		Name:      n.Name,
		Important: n.Important,
	}
}
