package grpc

import (
	"log"
	"time"

	"notes-keeper/internal/api/grpc/interceptors"
	notesv1 "notes-keeper/pkg/api/notes/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerOptions - настройки gRPC сервера из конфигурации
type ServerOptions struct {
	AuthToken     string // Пустой токен отключает авторизацию
	UseReflection bool
}

// NewServer создает и настраивает gRPC сервер с интерцепторами и конфигурацией
func NewServer(handler notesv1.NotesServiceServer, opts ServerOptions) *grpc.Server {
	// Порядок интерцепторов важен:
	// 1. Logger - логирует все запросы (включая заблокированные)
	// 2. Validate - валидирует запросы через их метод Validate
	// 3. Auth - проверяет авторизацию и блокирует неавторизованные запросы
	grpcServer := grpc.NewServer(
		// Один пользователь, поэтому много одновременных стримов не нужно
		grpc.MaxConcurrentStreams(25),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute, // Закрытие неактивных соединений через 30 минут
			MaxConnectionAge:      1 * time.Hour,    // Ротация соединений
			MaxConnectionAgeGrace: 5 * time.Second,  // Ожидание завершения активных запросов перед закрытием
			Time:                  10 * time.Minute, // Время между пингами
			Timeout:               20 * time.Second, // Время ожидания ответа на ping
		}),
		// Стрим событий живет дольше MaxConnectionAge, клиенту разрешены собственные пинги
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor,
			interceptors.ValidateUnaryInterceptor,
			interceptors.AuthUnaryInterceptor(opts.AuthToken),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor,
			interceptors.AuthStreamInterceptor(opts.AuthToken),
		),
	)

	notesv1.RegisterNotesServiceServer(grpcServer, handler)
	log.Println("Registered NotesService")

	if opts.AuthToken == "" {
		log.Println("Warning: auth token is empty, authorization is disabled")
	}

	// Настройка reflection (для grpcurl/grpcui)
	if opts.UseReflection {
		reflection.Register(grpcServer)
		log.Println("Enabled gRPC reflection")
	}

	return grpcServer
}
