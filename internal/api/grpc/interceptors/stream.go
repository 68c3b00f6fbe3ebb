package interceptors

import (
	"log"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
)

// countingServerStream считает отправленные сообщения стрима
type countingServerStream struct {
	grpc.ServerStream
	sent atomic.Int64
}

func (w *countingServerStream) SendMsg(m any) error {
	if err := w.ServerStream.SendMsg(m); err != nil {
		log.Printf("[gRPC] stream SendMsg error: %v", err)
		return err
	}
	w.sent.Add(1)
	return nil
}

// StreamInterceptor логирует открытие и завершение стрима
// вместе с количеством отправленных сообщений
func StreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	log.Printf("[gRPC] stream %s opened from %s", info.FullMethod, peerAddr(ss.Context()))
	start := time.Now()

	wrapped := &countingServerStream{ServerStream: ss}
	err := handler(srv, wrapped)
	if err != nil {
		log.Printf("[gRPC] stream %s closed with error after %d messages: %v (%v)", info.FullMethod, wrapped.sent.Load(), err, time.Since(start))
	} else {
		log.Printf("[gRPC] stream %s closed after %d messages (%v)", info.FullMethod, wrapped.sent.Load(), time.Since(start))
	}

	return err
}
