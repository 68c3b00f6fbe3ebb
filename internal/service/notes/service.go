package notes

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"notes-keeper/internal/model"
	"notes-keeper/internal/repository"
	svc "notes-keeper/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	events         svc.EventBus
	logger         *slog.Logger
	locale         language.Tag
	now            func() time.Time
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, opts ...Option) svc.NoteService {
	s := &service{
		noteRepository: noteRepository,
		logger:         slog.Default(),
		locale:         language.Und,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init выбирает первую заметку отсортированного списка
func (s *service) Init(ctx context.Context, sess *model.Session) (bool, error) {
	hasNote, err := s.selectFirst(ctx, sess)
	if err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "notes initialized", "has_note", hasNote, "current_id", sess.CurrentID)
	return hasNote, nil
}

// CreateWithName создает и сразу сохраняет новую заметку
func (s *service) CreateWithName(ctx context.Context, name string) (model.Note, error) {
	return s.noteRepository.CreateWithName(ctx, name)
}

// AddNote сохраняет заметку и безусловно делает её текущей
func (s *service) AddNote(ctx context.Context, sess *model.Session, note model.Note) error {
	if err := s.noteRepository.Save(ctx, note); err != nil {
		return err
	}

	sess.Select(note.ID)
	s.publish(model.EventCreated, note.Info())
	s.logger.DebugContext(ctx, "note added", "id", note.ID, "name", note.Name)

	return nil
}

// NewNote создает заметку с именем из поля ввода (без пробелов по краям) и делает её текущей.
// Пустое имя заменяется текущим временем в формате RFC 3339.
func (s *service) NewNote(ctx context.Context, sess *model.Session, name string) (model.Note, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.now().UTC().Format(time.RFC3339)
	}

	note, err := s.noteRepository.CreateWithName(ctx, name)
	if err != nil {
		return model.Note{}, err
	}

	if err := s.AddNote(ctx, sess, note); err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// CurrentNote заново читает текущую заметку из хранилища при каждом вызове
func (s *service) CurrentNote(ctx context.Context, sess *model.Session) (model.Note, bool, error) {
	if !sess.HasCurrent() {
		return model.Note{}, false, nil
	}

	note, err := s.noteRepository.LoadByID(ctx, sess.CurrentID)
	if err != nil {
		return model.Note{}, false, err
	}

	return note, true, nil
}

// SetCurrentID меняет выбор без обращения к хранилищу.
// Несуществующий ID проявится как ErrNoteNotFound при следующем чтении.
func (s *service) SetCurrentID(sess *model.Session, id string) {
	if id == "" {
		sess.Clear()
		return
	}
	sess.Select(id)
}

// SelectNote переключает текущую заметку.
// Если у текущей заметки есть несохраненные изменения, content сначала записывается в неё.
func (s *service) SelectNote(ctx context.Context, sess *model.Session, id, content string) (model.Note, error) {
	if id == "" {
		return model.Note{}, errors.New("id cannot be empty")
	}

	if sess.HasCurrent() && sess.Dirty {
		if _, err := s.SaveCurrentNote(ctx, sess, nil, content); err != nil {
			return model.Note{}, err
		}
	}

	note, err := s.noteRepository.LoadByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	sess.Select(note.ID)
	s.publish(model.EventSelected, note.Info())

	return note, nil
}

// SaveCurrentNote записывает переименование и содержимое одной записью
func (s *service) SaveCurrentNote(ctx context.Context, sess *model.Session, newName *string, content string) (bool, error) {
	if !sess.HasCurrent() {
		return false, nil
	}

	note, err := s.noteRepository.LoadByID(ctx, sess.CurrentID)
	if err != nil {
		return false, err
	}

	var name string
	if newName != nil {
		name = strings.TrimSpace(*newName)
	}
	renamed := newName != nil && name != note.Name
	if renamed {
		note.Name = name
	}
	note.Content = content

	// Имя и содержимое попадают в хранилище вместе, одной записью
	if err := s.noteRepository.Save(ctx, note); err != nil {
		return false, err
	}

	sess.Dirty = false
	if renamed {
		s.publish(model.EventRenamed, note.Info())
	}
	s.publish(model.EventSaved, note.Info())
	s.logger.DebugContext(ctx, "note saved", "id", note.ID, "renamed", renamed, "content_bytes", len(content))

	return true, nil
}

// DeleteCurrentNote удаляет текущую заметку и заново выбирает первую по списку
func (s *service) DeleteCurrentNote(ctx context.Context, sess *model.Session) (bool, error) {
	if !sess.HasCurrent() {
		// Удалять нечего: это не ошибка
		return true, nil
	}

	id := sess.CurrentID
	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return false, err
	}
	// Удаленный ID не должен оставаться текущим, даже если выбор следующей заметки не удастся
	sess.Clear()
	s.publish(model.EventDeleted, model.NoteInfo{ID: id})
	s.logger.DebugContext(ctx, "note deleted", "id", id)

	return s.selectFirst(ctx, sess)
}

// ToggleCurrentNoteImportant переключает флаг важности и сразу сохраняет заметку
func (s *service) ToggleCurrentNoteImportant(ctx context.Context, sess *model.Session) (bool, error) {
	if !sess.HasCurrent() {
		return false, nil
	}

	note, err := s.noteRepository.LoadByID(ctx, sess.CurrentID)
	if err != nil {
		return false, err
	}

	note.Important = !note.Important
	if err := s.noteRepository.Save(ctx, note); err != nil {
		return false, err
	}

	s.publish(model.EventImportant, note.Info())

	return true, nil
}

// SortedNoteList перечисляет все записи и сортирует их по имени с учетом локали.
// Равные имена сохраняют порядок перечисления хранилища.
func (s *service) SortedNoteList(ctx context.Context) ([]model.NoteInfo, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]model.NoteInfo, len(notes))
	for i, note := range notes {
		infos[i] = note.Info()
	}

	// Collator не потокобезопасен, поэтому создается на каждый вызов
	collator := collate.New(s.locale)
	slices.SortStableFunc(infos, func(a, b model.NoteInfo) int {
		return collator.CompareString(a.Name, b.Name)
	})

	return infos, nil
}

// Usage возвращает занятый хранилищем объем в байтах
func (s *service) Usage(ctx context.Context) (int64, error) {
	return s.noteRepository.Usage(ctx)
}

// selectFirst делает текущей первую заметку отсортированного списка или снимает выбор
func (s *service) selectFirst(ctx context.Context, sess *model.Session) (bool, error) {
	infos, err := s.SortedNoteList(ctx)
	if err != nil {
		return false, err
	}

	if len(infos) == 0 {
		sess.Clear()
		return false, nil
	}

	sess.Select(infos[0].ID)
	s.publish(model.EventSelected, infos[0])

	return true, nil
}

func (s *service) publish(eventType model.EventType, info model.NoteInfo) {
	if s.events == nil {
		return
	}

	s.events.Publish(model.Event{
		Type: eventType,
		Note: info,
		At:   s.now(),
	})
}
