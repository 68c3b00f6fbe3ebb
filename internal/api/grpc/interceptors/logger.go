package interceptors

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggerUnaryInterceptor логирует каждый вызов одной строкой:
// метод, адрес клиента, код статуса и время выполнения
func LoggerUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	st := status.Convert(err)
	if err != nil {
		log.Printf("[gRPC] %s from %s - %s: %s - %v", info.FullMethod, peerAddr(ctx), st.Code(), st.Message(), time.Since(start))
	} else {
		log.Printf("[gRPC] %s from %s - %s - %v", info.FullMethod, peerAddr(ctx), st.Code(), time.Since(start))
	}

	return resp, err
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return "unknown"
}
