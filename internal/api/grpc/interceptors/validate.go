package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validator реализуют запросы, у которых есть правила валидации
type validator interface {
	Validate() error
}

// ValidateUnaryInterceptor валидирует входящие запросы через их метод Validate.
// Если валидация не пройдена, возвращается ошибка с кодом InvalidArgument.
func ValidateUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if v, ok := req.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "validation failed: %v", err)
		}
	}

	return handler(ctx, req)
}
