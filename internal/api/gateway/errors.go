package gateway

import (
	"context"
	"log"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	_ "google.golang.org/genproto/googleapis/rpc/errdetails" // регистрирует google.rpc.ErrorInfo для protojson
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

const fallbackErrorBody = `{"code":13,"message":"failed to marshal error message"}`

var errorMarshaler = protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: false}

// errorHandler пишет gRPC статус как google.rpc.Status в JSON
// с HTTP кодом, соответствующим gRPC коду
func errorHandler(ctx context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {
	st := status.Convert(err)

	body, merr := errorMarshaler.Marshal(st.Proto())
	if merr != nil {
		log.Printf("[HTTP] failed to marshal error %v: %v", err, merr)
		st = status.New(codes.Internal, "failed to marshal error message")
		body = []byte(fallbackErrorBody)
	}

	httpStatus := runtime.HTTPStatusFromCode(st.Code())
	if httpStatus >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %s: %s", r.Method, r.URL.Path, st.Code(), st.Message())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if _, werr := w.Write(body); werr != nil {
		log.Printf("[HTTP] failed to write error response: %v", werr)
	}
}
