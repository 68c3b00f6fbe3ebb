package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"google.golang.org/grpc"

	"notes-keeper/internal/api/gateway"
	grpcapi "notes-keeper/internal/api/grpc"
	"notes-keeper/internal/api/swagger"
	"notes-keeper/internal/config"
	"notes-keeper/internal/repository/kv"
	notesService "notes-keeper/internal/service/notes"
	"notes-keeper/internal/store"
	"notes-keeper/internal/store/driver"
	notesv1 "notes-keeper/pkg/api/notes/v1"
)

// Server представляет сервер приложения с gRPC и HTTP Gateway
type Server struct {
	// HTTP компоненты
	Mux           *http.ServeMux
	HTTPAddr      string
	GatewayCtx    context.Context
	GatewayCancel context.CancelFunc

	// gRPC компоненты
	GRPCServer *grpc.Server
	GRPCAddr   string
	Listener   net.Listener

	// Контекст сервера для graceful shutdown стримов
	// Этот контекст отменяется при shutdown для корректного завершения стримов
	Ctx    context.Context
	Cancel context.CancelFunc

	Config *config.Config
	Store  store.Backend

	// Уровень логирования сервиса можно менять на лету (см. WatchConfig)
	Logger   *slog.Logger
	LogLevel *slog.LevelVar

	gatewayDone chan struct{}
}

// NewServer создает и инициализирует новый экземпляр сервера
func NewServer(cfg *config.Config) (*Server, error) {
	cfg.ApplyDefaults()

	log.Printf("Config loaded: gRPC port=%d, HTTP port=%d, storage=%s",
		cfg.Server.PortGRPC, cfg.Server.PortHTTP, cfg.Storage.Driver)

	grpcAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortGRPC)
	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)

	listener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	// В отличие от unary методов, где контекст автоматически отменяется при GracefulStop(),
	// в стримах необходимо явно слушать этот контекст для корректного завершения
	serverCtx, serverCancel := context.WithCancel(context.Background())
	gatewayCtx, gatewayCancel := context.WithCancel(context.Background())

	level := new(slog.LevelVar)
	level.Set(cfg.Logger.SlogLevel())

	return &Server{
		Mux:           http.NewServeMux(),
		HTTPAddr:      httpAddr,
		GatewayCtx:    gatewayCtx,
		GatewayCancel: gatewayCancel,
		GRPCAddr:      grpcAddr,
		Listener:      listener,
		Ctx:           serverCtx,
		Cancel:        serverCancel,
		Config:        cfg,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		LogLevel:      level,
	}, nil
}

// Initialize инициализирует компоненты сервера (Store → Repository → Service → Handler)
func (s *Server) Initialize(ctx context.Context) error {
	locale, err := language.Parse(s.Config.Notes.Locale)
	if err != nil {
		return fmt.Errorf("invalid notes locale %q: %w", s.Config.Notes.Locale, err)
	}

	backend, err := driver.Open(ctx, s.Config.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	s.Store = backend
	log.Printf("Initialized %s storage", s.Config.Storage.Driver)

	noteRepo := kv.NewRepository(backend)

	events := notesService.NewEventService()
	noteSvc := notesService.NewNoteService(noteRepo,
		notesService.WithLogger(s.Logger),
		notesService.WithLocale(locale),
		notesService.WithEvents(events),
	)
	log.Printf("Initialized note service (locale %s)", locale)

	heartbeat := time.Duration(s.Config.Server.HeartbeatInterval) * time.Second
	noteHandler := grpcapi.NewHandler(noteSvc, events, s.Ctx, heartbeat)

	// Как при открытии редактора: сразу выбираем первую заметку списка.
	// Ошибка не мешает запуску, клиент может повторить Init.
	initResp, err := noteHandler.Init(ctx, &notesv1.InitRequest{})
	switch {
	case err != nil:
		log.Printf("Warning: initial note selection failed: %v", err)
	case initResp.HasNote:
		log.Printf("Selected note %s on startup", initResp.Current.Id)
	default:
		log.Printf("No notes to select on startup")
	}

	s.GRPCServer = grpcapi.NewServer(noteHandler, grpcapi.ServerOptions{
		AuthToken:     s.Config.Auth.Token,
		UseReflection: s.Config.Server.UseReflection,
	})

	return nil
}

// ServeSwagger регистрирует маршруты Swagger UI на HTTP mux
func (s *Server) ServeSwagger() error {
	if !s.Config.Swagger.Enabled {
		log.Printf("Swagger UI is disabled")
		return nil
	}

	if err := swagger.ServeSwagger(s.Mux); err != nil {
		return fmt.Errorf("failed to serve swagger: %w", err)
	}
	log.Printf("Swagger UI available at http://localhost:%d/swagger/", s.Config.Server.PortHTTP)
	return nil
}

// WatchConfig применяет уровень логирования из файла конфигурации при каждом его изменении
func (s *Server) WatchConfig(configFile string) error {
	return config.Watch(configFile, func(cfg *config.Config) {
		level := cfg.Logger.SlogLevel()
		if level != s.LogLevel.Level() {
			s.LogLevel.Set(level)
			log.Printf("Log level changed to %s", level)
		}
	})
}

// Start запускает gRPC и HTTP Gateway серверы в горутинах
// Возвращает канал ошибок для отслеживания ошибок серверов
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	go func() {
		log.Printf("gRPC server listening on %s", s.GRPCAddr)
		if err := s.GRPCServer.Serve(s.Listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// Gateway подключается к gRPC серверу по локальному адресу
	_, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	grpcAddr := net.JoinHostPort("localhost", port)

	s.gatewayDone = make(chan struct{})
	go func() {
		defer close(s.gatewayDone)
		if err := gateway.Setup(s.GatewayCtx, grpcAddr, s.HTTPAddr, s.Config.Gateway, s.Mux); err != nil {
			errChan <- fmt.Errorf("HTTP Gateway error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера и закрывает хранилище
func (s *Server) Shutdown() error {
	log.Println("Starting graceful shutdown...")

	// Отменяем контекст сервера ПЕРЕД GracefulStop(), иначе стримы событий не завершатся
	s.Cancel()
	s.GatewayCancel()

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		if s.GRPCServer != nil {
			s.GRPCServer.GracefulStop()
		}
		close(stopped)
	}()

	var shutdownErr error
	select {
	case <-stopped:
		log.Println("gRPC server stopped gracefully")
	case <-ctx.Done():
		log.Println("Graceful shutdown timeout, forcing stop...")
		s.GRPCServer.Stop()
		log.Println("gRPC server stopped forcefully")
		shutdownErr = ctx.Err()
	}

	// Gateway должен отпустить соединение с gRPC до закрытия хранилища
	if s.gatewayDone != nil {
		select {
		case <-s.gatewayDone:
		case <-ctx.Done():
		}
	}

	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			log.Println("Storage closed")
		}
	}

	return shutdownErr
}
