package notesv1

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName - content-subtype, под которым зарегистрирован JSON кодек
// (заголовок content-type: application/grpc+json)
const CodecName = "json"

// jsonCodec сериализует сообщения NotesService в JSON
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption выбирает JSON кодек для клиентских вызовов.
// Использование: grpc.WithDefaultCallOptions(notesv1.CallOption())
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
