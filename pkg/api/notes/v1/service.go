package notesv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Полные имена методов NotesService
const (
	ServiceName = "notes.v1.NotesService"

	NotesService_Init_FullMethodName              = "/notes.v1.NotesService/Init"
	NotesService_NewNote_FullMethodName           = "/notes.v1.NotesService/NewNote"
	NotesService_GetCurrentNote_FullMethodName    = "/notes.v1.NotesService/GetCurrentNote"
	NotesService_SelectNote_FullMethodName        = "/notes.v1.NotesService/SelectNote"
	NotesService_SaveCurrentNote_FullMethodName   = "/notes.v1.NotesService/SaveCurrentNote"
	NotesService_DeleteCurrentNote_FullMethodName = "/notes.v1.NotesService/DeleteCurrentNote"
	NotesService_ToggleImportant_FullMethodName   = "/notes.v1.NotesService/ToggleImportant"
	NotesService_ListNotes_FullMethodName         = "/notes.v1.NotesService/ListNotes"
	NotesService_GetUsage_FullMethodName          = "/notes.v1.NotesService/GetUsage"
	NotesService_MarkDirty_FullMethodName         = "/notes.v1.NotesService/MarkDirty"
	NotesService_WatchEvents_FullMethodName       = "/notes.v1.NotesService/WatchEvents"
)

// NotesServiceServer - серверная часть NotesService
type NotesServiceServer interface {
	Init(context.Context, *InitRequest) (*InitResponse, error)
	NewNote(context.Context, *NewNoteRequest) (*NewNoteResponse, error)
	GetCurrentNote(context.Context, *GetCurrentNoteRequest) (*GetCurrentNoteResponse, error)
	SelectNote(context.Context, *SelectNoteRequest) (*SelectNoteResponse, error)
	SaveCurrentNote(context.Context, *SaveCurrentNoteRequest) (*SaveCurrentNoteResponse, error)
	DeleteCurrentNote(context.Context, *DeleteCurrentNoteRequest) (*DeleteCurrentNoteResponse, error)
	ToggleImportant(context.Context, *ToggleImportantRequest) (*ToggleImportantResponse, error)
	ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	GetUsage(context.Context, *GetUsageRequest) (*GetUsageResponse, error)
	MarkDirty(context.Context, *MarkDirtyRequest) (*MarkDirtyResponse, error)
	WatchEvents(*WatchEventsRequest, grpc.ServerStreamingServer[Event]) error
	mustEmbedUnimplementedNotesServiceServer()
}

// UnimplementedNotesServiceServer нужно встраивать в реализации сервера
type UnimplementedNotesServiceServer struct{}

func (UnimplementedNotesServiceServer) Init(context.Context, *InitRequest) (*InitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Init not implemented")
}
func (UnimplementedNotesServiceServer) NewNote(context.Context, *NewNoteRequest) (*NewNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method NewNote not implemented")
}
func (UnimplementedNotesServiceServer) GetCurrentNote(context.Context, *GetCurrentNoteRequest) (*GetCurrentNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentNote not implemented")
}
func (UnimplementedNotesServiceServer) SelectNote(context.Context, *SelectNoteRequest) (*SelectNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SelectNote not implemented")
}
func (UnimplementedNotesServiceServer) SaveCurrentNote(context.Context, *SaveCurrentNoteRequest) (*SaveCurrentNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveCurrentNote not implemented")
}
func (UnimplementedNotesServiceServer) DeleteCurrentNote(context.Context, *DeleteCurrentNoteRequest) (*DeleteCurrentNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCurrentNote not implemented")
}
func (UnimplementedNotesServiceServer) ToggleImportant(context.Context, *ToggleImportantRequest) (*ToggleImportantResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleImportant not implemented")
}
func (UnimplementedNotesServiceServer) ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotes not implemented")
}
func (UnimplementedNotesServiceServer) GetUsage(context.Context, *GetUsageRequest) (*GetUsageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUsage not implemented")
}
func (UnimplementedNotesServiceServer) MarkDirty(context.Context, *MarkDirtyRequest) (*MarkDirtyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkDirty not implemented")
}
func (UnimplementedNotesServiceServer) WatchEvents(*WatchEventsRequest, grpc.ServerStreamingServer[Event]) error {
	return status.Error(codes.Unimplemented, "method WatchEvents not implemented")
}
func (UnimplementedNotesServiceServer) mustEmbedUnimplementedNotesServiceServer() {}

// RegisterNotesServiceServer регистрирует реализацию на gRPC сервере
func RegisterNotesServiceServer(s grpc.ServiceRegistrar, srv NotesServiceServer) {
	s.RegisterService(&NotesService_ServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для метода call с учетом цепочки интерцепторов
func unaryHandler[Req, Resp any](fullMethod string, call func(NotesServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NotesServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NotesServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(NotesServiceServer).WatchEvents(in, &grpc.GenericServerStream[WatchEventsRequest, Event]{ServerStream: stream})
}

// NotesService_ServiceDesc описывает NotesService для grpc.ServiceRegistrar
var NotesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Init", Handler: unaryHandler(NotesService_Init_FullMethodName, NotesServiceServer.Init)},
		{MethodName: "NewNote", Handler: unaryHandler(NotesService_NewNote_FullMethodName, NotesServiceServer.NewNote)},
		{MethodName: "GetCurrentNote", Handler: unaryHandler(NotesService_GetCurrentNote_FullMethodName, NotesServiceServer.GetCurrentNote)},
		{MethodName: "SelectNote", Handler: unaryHandler(NotesService_SelectNote_FullMethodName, NotesServiceServer.SelectNote)},
		{MethodName: "SaveCurrentNote", Handler: unaryHandler(NotesService_SaveCurrentNote_FullMethodName, NotesServiceServer.SaveCurrentNote)},
		{MethodName: "DeleteCurrentNote", Handler: unaryHandler(NotesService_DeleteCurrentNote_FullMethodName, NotesServiceServer.DeleteCurrentNote)},
		{MethodName: "ToggleImportant", Handler: unaryHandler(NotesService_ToggleImportant_FullMethodName, NotesServiceServer.ToggleImportant)},
		{MethodName: "ListNotes", Handler: unaryHandler(NotesService_ListNotes_FullMethodName, NotesServiceServer.ListNotes)},
		{MethodName: "GetUsage", Handler: unaryHandler(NotesService_GetUsage_FullMethodName, NotesServiceServer.GetUsage)},
		{MethodName: "MarkDirty", Handler: unaryHandler(NotesService_MarkDirty_FullMethodName, NotesServiceServer.MarkDirty)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEvents",
			Handler:       watchEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "notes/v1/notes.proto",
}

// NotesServiceClient - клиентская часть NotesService.
// Соединение должно использовать JSON кодек (см. CallOption).
type NotesServiceClient interface {
	Init(ctx context.Context, in *InitRequest, opts ...grpc.CallOption) (*InitResponse, error)
	NewNote(ctx context.Context, in *NewNoteRequest, opts ...grpc.CallOption) (*NewNoteResponse, error)
	GetCurrentNote(ctx context.Context, in *GetCurrentNoteRequest, opts ...grpc.CallOption) (*GetCurrentNoteResponse, error)
	SelectNote(ctx context.Context, in *SelectNoteRequest, opts ...grpc.CallOption) (*SelectNoteResponse, error)
	SaveCurrentNote(ctx context.Context, in *SaveCurrentNoteRequest, opts ...grpc.CallOption) (*SaveCurrentNoteResponse, error)
	DeleteCurrentNote(ctx context.Context, in *DeleteCurrentNoteRequest, opts ...grpc.CallOption) (*DeleteCurrentNoteResponse, error)
	ToggleImportant(ctx context.Context, in *ToggleImportantRequest, opts ...grpc.CallOption) (*ToggleImportantResponse, error)
	ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error)
	GetUsage(ctx context.Context, in *GetUsageRequest, opts ...grpc.CallOption) (*GetUsageResponse, error)
	MarkDirty(ctx context.Context, in *MarkDirtyRequest, opts ...grpc.CallOption) (*MarkDirtyResponse, error)
	WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error)
}

type notesServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewNotesServiceClient создает клиента поверх соединения
func NewNotesServiceClient(cc grpc.ClientConnInterface) NotesServiceClient {
	return &notesServiceClient{cc: cc}
}

// invoke выполняет unary вызов, всегда выбирая JSON кодек
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) Init(ctx context.Context, in *InitRequest, opts ...grpc.CallOption) (*InitResponse, error) {
	return invoke[InitResponse](ctx, c.cc, NotesService_Init_FullMethodName, in, opts)
}

func (c *notesServiceClient) NewNote(ctx context.Context, in *NewNoteRequest, opts ...grpc.CallOption) (*NewNoteResponse, error) {
	return invoke[NewNoteResponse](ctx, c.cc, NotesService_NewNote_FullMethodName, in, opts)
}

func (c *notesServiceClient) GetCurrentNote(ctx context.Context, in *GetCurrentNoteRequest, opts ...grpc.CallOption) (*GetCurrentNoteResponse, error) {
	return invoke[GetCurrentNoteResponse](ctx, c.cc, NotesService_GetCurrentNote_FullMethodName, in, opts)
}

func (c *notesServiceClient) SelectNote(ctx context.Context, in *SelectNoteRequest, opts ...grpc.CallOption) (*SelectNoteResponse, error) {
	return invoke[SelectNoteResponse](ctx, c.cc, NotesService_SelectNote_FullMethodName, in, opts)
}

func (c *notesServiceClient) SaveCurrentNote(ctx context.Context, in *SaveCurrentNoteRequest, opts ...grpc.CallOption) (*SaveCurrentNoteResponse, error) {
	return invoke[SaveCurrentNoteResponse](ctx, c.cc, NotesService_SaveCurrentNote_FullMethodName, in, opts)
}

func (c *notesServiceClient) DeleteCurrentNote(ctx context.Context, in *DeleteCurrentNoteRequest, opts ...grpc.CallOption) (*DeleteCurrentNoteResponse, error) {
	return invoke[DeleteCurrentNoteResponse](ctx, c.cc, NotesService_DeleteCurrentNote_FullMethodName, in, opts)
}

func (c *notesServiceClient) ToggleImportant(ctx context.Context, in *ToggleImportantRequest, opts ...grpc.CallOption) (*ToggleImportantResponse, error) {
	return invoke[ToggleImportantResponse](ctx, c.cc, NotesService_ToggleImportant_FullMethodName, in, opts)
}

func (c *notesServiceClient) ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error) {
	return invoke[ListNotesResponse](ctx, c.cc, NotesService_ListNotes_FullMethodName, in, opts)
}

func (c *notesServiceClient) GetUsage(ctx context.Context, in *GetUsageRequest, opts ...grpc.CallOption) (*GetUsageResponse, error) {
	return invoke[GetUsageResponse](ctx, c.cc, NotesService_GetUsage_FullMethodName, in, opts)
}

func (c *notesServiceClient) MarkDirty(ctx context.Context, in *MarkDirtyRequest, opts ...grpc.CallOption) (*MarkDirtyResponse, error) {
	return invoke[MarkDirtyResponse](ctx, c.cc, NotesService_MarkDirty_FullMethodName, in, opts)
}

func (c *notesServiceClient) WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &NotesService_ServiceDesc.Streams[0], NotesService_WatchEvents_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchEventsRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
