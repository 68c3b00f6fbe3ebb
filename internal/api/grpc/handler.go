package grpc

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"notes-keeper/internal/converter"
	"notes-keeper/internal/model"
	"notes-keeper/internal/repository"
	svc "notes-keeper/internal/service"
	"notes-keeper/internal/store"
	notesv1 "notes-keeper/pkg/api/notes/v1"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorDomain - домен для google.rpc.ErrorInfo
const errorDomain = "notes.v1"

// Handler реализует gRPC сервер для NotesService.
// Handler владеет сессией единственного пользователя: текущей заметкой и флагом изменений.
type Handler struct {
	notesv1.UnimplementedNotesServiceServer

	noteService svc.NoteService
	events      svc.EventBus

	// Контекст сервера: отменяется при shutdown, стримы должны его слушать
	serverCtx context.Context
	heartbeat time.Duration

	mu      sync.Mutex
	session model.Session
}

// NewHandler создает новый экземпляр gRPC хэндлера.
// heartbeat <= 0 отключает периодические heartbeat события в WatchEvents.
func NewHandler(noteService svc.NoteService, events svc.EventBus, serverCtx context.Context, heartbeat time.Duration) *Handler {
	return &Handler{
		noteService: noteService,
		events:      events,
		serverCtx:   serverCtx,
		heartbeat:   heartbeat,
	}
}

// Init выбирает первую заметку отсортированного списка
func (h *Handler) Init(ctx context.Context, req *notesv1.InitRequest) (*notesv1.InitResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hasNote, err := h.noteService.Init(ctx, &h.session)
	if err != nil {
		return nil, handleError(err)
	}

	resp := &notesv1.InitResponse{HasNote: hasNote}
	if hasNote {
		current, err := h.currentNote(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		resp.Current = current
	}

	return resp, nil
}

// NewNote создает заметку и делает её текущей
func (h *Handler) NewNote(ctx context.Context, req *notesv1.NewNoteRequest) (*notesv1.NewNoteResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	note, err := h.noteService.NewNote(ctx, &h.session, req.Name)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.NewNoteResponse{
		Note: converter.ModelToAPI(note),
	}, nil
}

// GetCurrentNote возвращает текущую заметку; пустой ответ - ничего не выбрано
func (h *Handler) GetCurrentNote(ctx context.Context, req *notesv1.GetCurrentNoteRequest) (*notesv1.GetCurrentNoteResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.currentNote(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.GetCurrentNoteResponse{Note: current}, nil
}

// SelectNote переключает текущую заметку, сохраняя несохраненное содержимое предыдущей
func (h *Handler) SelectNote(ctx context.Context, req *notesv1.SelectNoteRequest) (*notesv1.SelectNoteResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	note, err := h.noteService.SelectNote(ctx, &h.session, req.Id, req.Content)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.SelectNoteResponse{
		Note: converter.ModelToAPI(note),
	}, nil
}

// SaveCurrentNote сохраняет имя и содержимое текущей заметки одной записью
func (h *Handler) SaveCurrentNote(ctx context.Context, req *notesv1.SaveCurrentNoteRequest) (*notesv1.SaveCurrentNoteResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := h.noteService.SaveCurrentNote(ctx, &h.session, req.Name, req.Content)
	if err != nil {
		return nil, handleError(err)
	}

	resp := &notesv1.SaveCurrentNoteResponse{Saved: saved}
	if saved {
		if resp.Note, err = h.currentNote(ctx); err != nil {
			return nil, handleError(err)
		}
	}

	return resp, nil
}

// DeleteCurrentNote удаляет текущую заметку и возвращает новую текущую
func (h *Handler) DeleteCurrentNote(ctx context.Context, req *notesv1.DeleteCurrentNoteRequest) (*notesv1.DeleteCurrentNoteResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hasNote, err := h.noteService.DeleteCurrentNote(ctx, &h.session)
	if err != nil {
		return nil, handleError(err)
	}

	current, err := h.currentNote(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.DeleteCurrentNoteResponse{
		HasNote: hasNote,
		Current: current,
	}, nil
}

// ToggleImportant переключает флаг важности текущей заметки
func (h *Handler) ToggleImportant(ctx context.Context, req *notesv1.ToggleImportantRequest) (*notesv1.ToggleImportantResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	toggled, err := h.noteService.ToggleCurrentNoteImportant(ctx, &h.session)
	if err != nil {
		return nil, handleError(err)
	}

	resp := &notesv1.ToggleImportantResponse{Toggled: toggled}
	if toggled {
		if resp.Note, err = h.currentNote(ctx); err != nil {
			return nil, handleError(err)
		}
	}

	return resp, nil
}

// ListNotes возвращает отсортированный список заметок и ID текущей
func (h *Handler) ListNotes(ctx context.Context, req *notesv1.ListNotesRequest) (*notesv1.ListNotesResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	infos, err := h.noteService.SortedNoteList(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.ListNotesResponse{
		Notes:     converter.InfosToAPI(infos),
		CurrentId: h.session.CurrentID,
	}, nil
}

// GetUsage возвращает занятый хранилищем объем
func (h *Handler) GetUsage(ctx context.Context, req *notesv1.GetUsageRequest) (*notesv1.GetUsageResponse, error) {
	used, err := h.noteService.Usage(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &notesv1.GetUsageResponse{
		Bytes:     used,
		Kilobytes: store.FormatKB(used),
	}, nil
}

// MarkDirty отмечает, что в редакторе есть несохраненные изменения.
// Без текущей заметки флаг всегда сброшен.
func (h *Handler) MarkDirty(ctx context.Context, req *notesv1.MarkDirtyRequest) (*notesv1.MarkDirtyResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.Dirty = req.Dirty && h.session.HasCurrent()

	return &notesv1.MarkDirtyResponse{Dirty: h.session.Dirty}, nil
}

// WatchEvents отправляет клиенту события изменения заметок.
// Стрим завершается при отмене клиентом или при shutdown сервера.
func (h *Handler) WatchEvents(req *notesv1.WatchEventsRequest, stream grpc.ServerStreamingServer[notesv1.Event]) error {
	if h.events == nil {
		return status.Error(codes.Unimplemented, "events are not enabled")
	}

	ch := h.events.Subscribe()
	defer h.events.Unsubscribe(ch)

	if err := stream.Send(heartbeat("subscribed to note events")); err != nil {
		return err
	}

	// Nil канал никогда не срабатывает в select
	var ticks <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-stream.Context().Done():
			return status.FromContextError(stream.Context().Err()).Err()
		case <-h.serverCtx.Done():
			return status.Error(codes.Unavailable, "server is shutting down")
		case <-ticks:
			if err := stream.Send(heartbeat("")); err != nil {
				return err
			}
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(converter.EventToAPI(event)); err != nil {
				return err
			}
		}
	}
}

// currentNote читает текущую заметку; вызывается под h.mu
func (h *Handler) currentNote(ctx context.Context) (*notesv1.Note, error) {
	note, ok, err := h.noteService.CurrentNote(ctx, &h.session)
	if err != nil || !ok {
		return nil, err
	}
	return converter.ModelToAPI(note), nil
}

func heartbeat(message string) *notesv1.Event {
	return &notesv1.Event{
		Type:      notesv1.EventHeartbeat,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// handleError конвертирует внутренние ошибки в gRPC статусы с детализацией
func handleError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, repository.ErrNoteNotFound):
		return withInfo(codes.NotFound, "note not found", "NOTE_NOT_FOUND", err)
	case errors.Is(err, repository.ErrNoteCorrupt):
		return withInfo(codes.DataLoss, "note record is corrupt", "NOTE_CORRUPT", err)
	case errors.Is(err, store.ErrQuotaExceeded):
		return withInfo(codes.ResourceExhausted, "storage quota exceeded", "QUOTA_EXCEEDED", err)
	case errors.Is(err, store.ErrStorageFailure):
		return withInfo(codes.Internal, "storage failure", "STORAGE_FAILURE", err)
	}

	// Ошибки валидации сервиса ("id cannot be empty", "name is too long")
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "cannot be empty") || strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "too long") {
		return withInfo(codes.InvalidArgument, err.Error(), "VALIDATION_ERROR", err)
	}

	return withInfo(codes.Internal, "internal error", "INTERNAL_ERROR", err)
}

func withInfo(code codes.Code, message, reason string, cause error) error {
	st := status.New(code, message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: map[string]string{"cause": cause.Error()},
	})
	if err != nil {
		// Если не удалось добавить Details, возвращаем статус без деталей
		return st.Err()
	}
	return detailed.Err()
}
