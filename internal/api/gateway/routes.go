package gateway

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	notesv1 "notes-keeper/pkg/api/notes/v1"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// decodeFunc читает тело запроса; пустое тело оставляет v без изменений
type decodeFunc func(v any) error

type unaryRoute func(ctx context.Context, decode decodeFunc, params map[string]string) (any, error)

type gateway struct {
	client notesv1.NotesServiceClient
	mux    *runtime.ServeMux
}

func (g *gateway) register() error {
	routes := []struct {
		method  string
		pattern string
		rpc     string
		handle  unaryRoute
	}{
		{http.MethodPost, APIPrefix + "/init", notesv1.NotesService_Init_FullMethodName, g.initNotes},
		{http.MethodGet, APIPrefix + "/notes", notesv1.NotesService_ListNotes_FullMethodName, g.listNotes},
		{http.MethodPost, APIPrefix + "/notes", notesv1.NotesService_NewNote_FullMethodName, g.newNote},
		{http.MethodGet, APIPrefix + "/notes/current", notesv1.NotesService_GetCurrentNote_FullMethodName, g.currentNote},
		{http.MethodPut, APIPrefix + "/notes/current", notesv1.NotesService_SaveCurrentNote_FullMethodName, g.saveCurrentNote},
		{http.MethodDelete, APIPrefix + "/notes/current", notesv1.NotesService_DeleteCurrentNote_FullMethodName, g.deleteCurrentNote},
		{http.MethodPost, APIPrefix + "/notes/current/important", notesv1.NotesService_ToggleImportant_FullMethodName, g.toggleImportant},
		{http.MethodPost, APIPrefix + "/notes/current/dirty", notesv1.NotesService_MarkDirty_FullMethodName, g.markDirty},
		{http.MethodPost, APIPrefix + "/notes/{id}/select", notesv1.NotesService_SelectNote_FullMethodName, g.selectNote},
		{http.MethodGet, APIPrefix + "/usage", notesv1.NotesService_GetUsage_FullMethodName, g.usage},
	}

	for _, route := range routes {
		if err := g.mux.HandlePath(route.method, route.pattern, g.unary(route.pattern, route.rpc, route.handle)); err != nil {
			return err
		}
	}

	return g.mux.HandlePath(http.MethodGet, APIPrefix+"/events", g.watchEvents)
}

// unary переводит HTTP запрос в вызов gRPC и записывает ответ маршалером шлюза
func (g *gateway) unary(pattern, rpc string, handle unaryRoute) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		inbound, outbound := runtime.MarshalerForRequest(g.mux, r)

		ctx, err := runtime.AnnotateContext(r.Context(), g.mux, r, rpc, runtime.WithHTTPPathPattern(pattern))
		if err != nil {
			runtime.HTTPError(r.Context(), g.mux, outbound, w, r, err)
			return
		}

		decode := func(v any) error {
			if err := inbound.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
				return status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
			}
			return nil
		}

		resp, err := handle(ctx, decode, params)
		if err != nil {
			runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
			return
		}

		buf, err := outbound.Marshal(resp)
		if err != nil {
			runtime.HTTPError(ctx, g.mux, outbound, w, r, status.Errorf(codes.Internal, "failed to marshal response: %v", err))
			return
		}

		w.Header().Set("Content-Type", outbound.ContentType(resp))
		if _, err := w.Write(buf); err != nil {
			log.Printf("[HTTP] failed to write response for %s: %v", r.URL.Path, err)
		}
	}
}

func (g *gateway) initNotes(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.Init(ctx, &notesv1.InitRequest{})
}

func (g *gateway) listNotes(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
}

func (g *gateway) newNote(ctx context.Context, decode decodeFunc, _ map[string]string) (any, error) {
	req := &notesv1.NewNoteRequest{}
	if err := decode(req); err != nil {
		return nil, err
	}
	return g.client.NewNote(ctx, req)
}

func (g *gateway) currentNote(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.GetCurrentNote(ctx, &notesv1.GetCurrentNoteRequest{})
}

func (g *gateway) saveCurrentNote(ctx context.Context, decode decodeFunc, _ map[string]string) (any, error) {
	req := &notesv1.SaveCurrentNoteRequest{}
	if err := decode(req); err != nil {
		return nil, err
	}
	return g.client.SaveCurrentNote(ctx, req)
}

func (g *gateway) deleteCurrentNote(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.DeleteCurrentNote(ctx, &notesv1.DeleteCurrentNoteRequest{})
}

func (g *gateway) toggleImportant(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.ToggleImportant(ctx, &notesv1.ToggleImportantRequest{})
}

func (g *gateway) markDirty(ctx context.Context, decode decodeFunc, _ map[string]string) (any, error) {
	req := &notesv1.MarkDirtyRequest{}
	if err := decode(req); err != nil {
		return nil, err
	}
	return g.client.MarkDirty(ctx, req)
}

func (g *gateway) selectNote(ctx context.Context, decode decodeFunc, params map[string]string) (any, error) {
	req := &notesv1.SelectNoteRequest{}
	if err := decode(req); err != nil {
		return nil, err
	}
	// ID из пути важнее ID из тела
	req.Id = params["id"]
	return g.client.SelectNote(ctx, req)
}

func (g *gateway) usage(ctx context.Context, _ decodeFunc, _ map[string]string) (any, error) {
	return g.client.GetUsage(ctx, &notesv1.GetUsageRequest{})
}

// watchEvents отдает стрим WatchEvents как NDJSON: одно событие на строку.
// Через wsproxy тот же маршрут доступен по WebSocket.
func (g *gateway) watchEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)

	ctx, err := runtime.AnnotateContext(r.Context(), g.mux, r, notesv1.NotesService_WatchEvents_FullMethodName,
		runtime.WithHTTPPathPattern(APIPrefix+"/events"))
	if err != nil {
		runtime.HTTPError(r.Context(), g.mux, outbound, w, r, err)
		return
	}

	stream, err := g.client.WatchEvents(ctx, &notesv1.WatchEventsRequest{})
	if err != nil {
		runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
		return
	}

	flusher, _ := w.(http.Flusher)
	started := false
	for {
		event, err := stream.Recv()
		if err != nil {
			// Пока ничего не отправлено, ошибку (например, Unauthenticated) можно вернуть статусом
			if !started && !errors.Is(err, io.EOF) {
				runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
			}
			return
		}

		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}

		buf, err := outbound.Marshal(event)
		if err != nil {
			log.Printf("[HTTP] failed to marshal event: %v", err)
			return
		}
		if _, err := w.Write(append(buf, '\n')); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
