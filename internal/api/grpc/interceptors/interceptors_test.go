package interceptors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var unaryInfo = &grpc.UnaryServerInfo{FullMethod: "/notes.v1.NotesService/ListNotes"}

func okHandler(ctx context.Context, req any) (any, error) {
	return "ok", nil
}

type validatedRequest struct {
	err error
}

func (r *validatedRequest) Validate() error {
	return r.err
}

func TestAuthUnaryInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		wantCode codes.Code
	}{
		{name: "auth disabled", token: "", header: "", wantCode: codes.OK},
		{name: "valid token", token: "secret", header: "Bearer secret", wantCode: codes.OK},
		{name: "missing header", token: "secret", header: "", wantCode: codes.Unauthenticated},
		{name: "wrong scheme", token: "secret", header: "Basic secret", wantCode: codes.Unauthenticated},
		{name: "wrong token", token: "secret", header: "Bearer nope", wantCode: codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.header != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(authorizationHeader, tt.header))
			}

			resp, err := AuthUnaryInterceptor(tt.token)(ctx, nil, unaryInfo, okHandler)

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "ok", resp)
			}
		})
	}
}

func TestAuthUnaryInterceptor_NoMetadata(t *testing.T) {
	_, err := AuthUnaryInterceptor("secret")(context.Background(), nil, unaryInfo, okHandler)

	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "metadata not provided", st.Message())
}

func TestValidateUnaryInterceptor(t *testing.T) {
	ctx := context.Background()

	_, err := ValidateUnaryInterceptor(ctx, &validatedRequest{err: errors.New("id cannot be empty")}, unaryInfo, okHandler)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, err.Error(), "id cannot be empty")

	resp, err := ValidateUnaryInterceptor(ctx, &validatedRequest{}, unaryInfo, okHandler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	// Запросы без Validate пропускаются как есть
	resp, err = ValidateUnaryInterceptor(ctx, struct{}{}, unaryInfo, okHandler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestLoggerUnaryInterceptor_PassesThrough(t *testing.T) {
	wantErr := status.Error(codes.NotFound, "note not found")

	_, err := LoggerUnaryInterceptor(context.Background(), nil, unaryInfo, func(ctx context.Context, req any) (any, error) {
		return nil, wantErr
	})

	assert.Equal(t, wantErr, err)
}
