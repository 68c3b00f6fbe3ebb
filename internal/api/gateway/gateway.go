package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"notes-keeper/internal/api/http/middleware"
	"notes-keeper/internal/config"
	notesv1 "notes-keeper/pkg/api/notes/v1"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/tmc/grpc-websocket-proxy/wsproxy"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// APIPrefix - префикс всех REST маршрутов
const APIPrefix = "/api/v1"

// Setup подключается к gRPC серверу и запускает HTTP Gateway.
// Если mux == nil, создается новый http.ServeMux, иначе используется переданный
// (например, с уже зарегистрированным Swagger UI).
// Сервер останавливается при отмене ctx.
func Setup(ctx context.Context, grpcAddr string, httpAddr string, cfg *config.ConfigGateway, mux *http.ServeMux) error {
	conn, err := grpc.NewClient(grpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(notesv1.CallOption()),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to gRPC server %s: %w", grpcAddr, err)
	}
	defer conn.Close()

	handler, err := NewHandler(notesv1.NewNotesServiceClient(conn), cfg, mux)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP Gateway shutdown error: %v", err)
		}
	}()

	log.Printf("HTTP Gateway server listening on %s", httpAddr)
	if cfg != nil {
		log.Printf("CORS enabled for origins: %s", cfg.CORSAllowedOrigins)
	}
	log.Printf("WebSocket proxy enabled for %s/events", APIPrefix)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewHandler собирает REST маршруты поверх клиента NotesService и оборачивает их middleware.
// Маршруты регистрируются на mux под префиксом /api/; nil mux заменяется новым.
func NewHandler(client notesv1.NotesServiceClient, cfg *config.ConfigGateway, mux *http.ServeMux) (http.Handler, error) {
	if cfg == nil {
		cfg = &config.ConfigGateway{}
	}
	if mux == nil {
		mux = http.NewServeMux()
	}

	// Передаем HTTP заголовок Authorization в gRPC metadata,
	// это необходимо для работы Auth интерцептора на gRPC сервере
	gwMux := runtime.NewServeMux(
		runtime.WithMetadata(func(ctx context.Context, req *http.Request) metadata.MD {
			md := metadata.New(nil)
			if auth := req.Header.Get("Authorization"); auth != "" {
				md.Set("authorization", auth)
			}
			return md
		}),
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONBuiltin{}),
		runtime.WithErrorHandler(errorHandler),
	)

	gw := &gateway{client: client, mux: gwMux}
	if err := gw.register(); err != nil {
		return nil, fmt.Errorf("failed to register gateway: %w", err)
	}
	mux.Handle("/api/", gwMux)

	// Порядок middleware (снаружи внутрь):
	// 1. WebSocket Proxy (самый внешний слой, чтобы корректно обрабатывать upgrade)
	// 2. CORS
	// 3. Logging
	// 4. Rate Limiting
	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler = middleware.Logging(handler)
	handler = setupCORS(cfg).Handler(handler)
	handler = setupWebSocketProxy(handler)

	return handler, nil
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	var origins []string
	for _, origin := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}

// setupWebSocketProxy позволяет читать NDJSON стрим /api/v1/events через WebSocket:
// каждая строка ответа отправляется клиенту отдельным сообщением
func setupWebSocketProxy(handler http.Handler) http.Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	return wsproxy.WebsocketProxy(handler,
		wsproxy.WithLogger(logger.WithField("component", "wsproxy")),
		wsproxy.WithMaxRespBodyBufferSize(1<<20),
	)
}
