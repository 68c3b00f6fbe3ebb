package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"notes-keeper/internal/model"
	"notes-keeper/internal/repository"
	"notes-keeper/internal/repository/kv"
	svc "notes-keeper/internal/service"
	"notes-keeper/internal/service/notes"
	"notes-keeper/internal/store"
	"notes-keeper/internal/store/memory"
	notesv1 "notes-keeper/pkg/api/notes/v1"
)

// stubNoteService - мок сервиса для тестирования handler без хранилища
type stubNoteService struct {
	svc.NoteService
	currentNoteFunc func(ctx context.Context, s *model.Session) (model.Note, bool, error)
}

func (m *stubNoteService) CurrentNote(ctx context.Context, s *model.Session) (model.Note, bool, error) {
	return m.currentNoteFunc(ctx, s)
}

type testServer struct {
	client notesv1.NotesServiceClient
	handler *Handler
	// stop отменяет контекст сервера, как это делает shutdown
	stop context.CancelFunc
}

// startServer поднимает NotesService на bufconn поверх хранилища в памяти
func startServer(t *testing.T, token string, quota int64) *testServer {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	events := notes.NewEventService()
	noteService := notes.NewNoteService(kv.NewRepository(memory.NewStore(quota)), notes.WithEvents(events))

	serverCtx, cancel := context.WithCancel(context.Background())
	handler := NewHandler(noteService, events, serverCtx, 0)
	srv := NewServer(handler, ServerOptions{AuthToken: token})
	go srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Stop()
	})

	return &testServer{
		client:  notesv1.NewNotesServiceClient(conn),
		handler: handler,
		stop:    cancel,
	}
}

func errorInfo(t *testing.T, err error) *errdetails.ErrorInfo {
	t.Helper()

	st := status.Convert(err)
	require.Len(t, st.Details(), 1, "Expected exactly one detail in error")

	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok, "Expected detail to be of type ErrorInfo")
	return info
}

func TestHandler_TodoScenario(t *testing.T) {
	// Arrange
	ctx := context.Background()
	ts := startServer(t, "", 0)

	// Act & Assert
	initResp, err := ts.client.Init(ctx, &notesv1.InitRequest{})
	require.NoError(t, err)
	assert.False(t, initResp.HasNote)
	assert.Nil(t, initResp.Current)

	created, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "Todo"})
	require.NoError(t, err)
	assert.Equal(t, "Todo", created.Note.Name)

	current, err := ts.client.GetCurrentNote(ctx, &notesv1.GetCurrentNoteRequest{})
	require.NoError(t, err)
	require.NotNil(t, current.Note)
	assert.Equal(t, created.Note.Id, current.Note.Id)

	toggled, err := ts.client.ToggleImportant(ctx, &notesv1.ToggleImportantRequest{})
	require.NoError(t, err)
	assert.True(t, toggled.Toggled)
	assert.True(t, toggled.Note.Important)

	list, err := ts.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)
	assert.True(t, list.Notes[0].Important)
	assert.Equal(t, created.Note.Id, list.CurrentId)

	deleted, err := ts.client.DeleteCurrentNote(ctx, &notesv1.DeleteCurrentNoteRequest{})
	require.NoError(t, err)
	assert.False(t, deleted.HasNote)
	assert.Nil(t, deleted.Current)

	list, err = ts.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)
	assert.Empty(t, list.CurrentId)
}

func TestHandler_SaveCurrentNote_Rename(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	_, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "Draft"})
	require.NoError(t, err)

	newName := "Final"
	resp, err := ts.client.SaveCurrentNote(ctx, &notesv1.SaveCurrentNoteRequest{Name: &newName, Content: "body"})
	require.NoError(t, err)
	require.True(t, resp.Saved)
	assert.Equal(t, "Final", resp.Note.Name)
	assert.Equal(t, "body", resp.Note.Content)
}

func TestHandler_NoCurrentNoteIsNotAnError(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	saved, err := ts.client.SaveCurrentNote(ctx, &notesv1.SaveCurrentNoteRequest{Content: "lost"})
	require.NoError(t, err)
	assert.False(t, saved.Saved)
	assert.Nil(t, saved.Note)

	toggled, err := ts.client.ToggleImportant(ctx, &notesv1.ToggleImportantRequest{})
	require.NoError(t, err)
	assert.False(t, toggled.Toggled)

	deleted, err := ts.client.DeleteCurrentNote(ctx, &notesv1.DeleteCurrentNoteRequest{})
	require.NoError(t, err)
	assert.True(t, deleted.HasNote, "Deleting nothing reports success")
	assert.Nil(t, deleted.Current)

	dirty, err := ts.client.MarkDirty(ctx, &notesv1.MarkDirtyRequest{Dirty: true})
	require.NoError(t, err)
	assert.False(t, dirty.Dirty, "Dirty flag requires a current note")
}

func TestHandler_SelectNote_SavesDirtyContent(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	first, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "first"})
	require.NoError(t, err)
	second, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "second"})
	require.NoError(t, err)

	_, err = ts.client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: first.Note.Id})
	require.NoError(t, err)

	dirty, err := ts.client.MarkDirty(ctx, &notesv1.MarkDirtyRequest{Dirty: true})
	require.NoError(t, err)
	require.True(t, dirty.Dirty)

	selected, err := ts.client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: second.Note.Id, Content: "typed"})
	require.NoError(t, err)
	assert.Equal(t, second.Note.Id, selected.Note.Id)

	back, err := ts.client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: first.Note.Id})
	require.NoError(t, err)
	assert.Equal(t, "typed", back.Note.Content)
}

func TestHandler_SelectNote_Validation(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	_, err := ts.client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: " "})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_SelectNote_NotFoundWithDetails(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	_, err := ts.client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: "missing"})

	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
	info := errorInfo(t, err)
	assert.Equal(t, "NOTE_NOT_FOUND", info.Reason)
	assert.Equal(t, errorDomain, info.Domain)
}

func TestHandler_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 128)

	_, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "small"})
	require.NoError(t, err)

	content := fmt.Sprintf("%0512d", 0)
	_, err = ts.client.SaveCurrentNote(ctx, &notesv1.SaveCurrentNoteRequest{Content: content})

	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, "QUOTA_EXCEEDED", errorInfo(t, err).Reason)
}

func TestHandler_GetUsage(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "", 0)

	_, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "usage"})
	require.NoError(t, err)

	resp, err := ts.client.GetUsage(ctx, &notesv1.GetUsageRequest{})
	require.NoError(t, err)
	assert.Positive(t, resp.Bytes)
	assert.Equal(t, store.FormatKB(resp.Bytes), resp.Kilobytes)
}

func TestHandler_Auth(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, "secret", 0)

	_, err := ts.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	authCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer secret")
	_, err = ts.client.ListNotes(authCtx, &notesv1.ListNotesRequest{})
	assert.NoError(t, err)

	stream, err := ts.client.WatchEvents(ctx, &notesv1.WatchEventsRequest{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHandler_WatchEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ts := startServer(t, "", 0)

	stream, err := ts.client.WatchEvents(ctx, &notesv1.WatchEventsRequest{})
	require.NoError(t, err)

	welcome, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, notesv1.EventHeartbeat, welcome.Type)

	created, err := ts.client.NewNote(ctx, &notesv1.NewNoteRequest{Name: "watched"})
	require.NoError(t, err)

	event, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, string(model.EventCreated), event.Type)
	require.NotNil(t, event.Note)
	assert.Equal(t, created.Note.Id, event.Note.Id)

	// Shutdown сервера завершает стрим
	ts.stop()
	_, err = stream.Recv()
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestGetCurrentNote_CorruptRecord(t *testing.T) {
	// Arrange
	mockService := &stubNoteService{
		currentNoteFunc: func(ctx context.Context, s *model.Session) (model.Note, bool, error) {
			return model.Note{}, false, fmt.Errorf("load %q: %w", "x", repository.ErrNoteCorrupt)
		},
	}
	handler := NewHandler(mockService, nil, context.Background(), 0)

	// Act
	_, err := handler.GetCurrentNote(context.Background(), &notesv1.GetCurrentNoteRequest{})

	// Assert
	require.Error(t, err)
	assert.Equal(t, codes.DataLoss, status.Code(err))
	assert.Equal(t, "NOTE_CORRUPT", errorInfo(t, err).Reason)
}

func TestWatchEvents_Disabled(t *testing.T) {
	handler := NewHandler(&stubNoteService{}, nil, context.Background(), 0)

	err := handler.WatchEvents(&notesv1.WatchEventsRequest{}, nil)

	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   codes.Code
		wantReason string
	}{
		{name: "not found", err: repository.ErrNoteNotFound, wantCode: codes.NotFound, wantReason: "NOTE_NOT_FOUND"},
		{name: "corrupt", err: repository.ErrNoteCorrupt, wantCode: codes.DataLoss, wantReason: "NOTE_CORRUPT"},
		{name: "quota", err: store.Failure("set", "note:1", store.ErrQuotaExceeded), wantCode: codes.ResourceExhausted, wantReason: "QUOTA_EXCEEDED"},
		{name: "storage", err: store.Failure("get", "note:1", errors.New("io")), wantCode: codes.Internal, wantReason: "STORAGE_FAILURE"},
		{name: "validation", err: errors.New("id cannot be empty"), wantCode: codes.InvalidArgument, wantReason: "VALIDATION_ERROR"},
		{name: "too long", err: errors.New("name is too long"), wantCode: codes.InvalidArgument, wantReason: "VALIDATION_ERROR"},
		{name: "internal", err: errors.New("some internal error"), wantCode: codes.Internal, wantReason: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grpcErr := handleError(tt.err)

			require.Error(t, grpcErr)
			assert.Equal(t, tt.wantCode, status.Code(grpcErr))

			info := errorInfo(t, grpcErr)
			assert.Equal(t, tt.wantReason, info.Reason)
			assert.Equal(t, tt.err.Error(), info.Metadata["cause"])
		})
	}
}

func TestHandleError_PassThrough(t *testing.T) {
	assert.NoError(t, handleError(nil))

	st := status.Error(codes.Unauthenticated, "invalid token")
	assert.Equal(t, st, handleError(st))

	assert.Equal(t, codes.DeadlineExceeded, status.Code(handleError(context.DeadlineExceeded)))
	assert.Equal(t, codes.Canceled, status.Code(handleError(fmt.Errorf("list: %w", context.Canceled))))
}
