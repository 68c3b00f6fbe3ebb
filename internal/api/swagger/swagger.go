package swagger

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
)

// SpecPath - путь, по которому отдается OpenAPI документ REST шлюза
const SpecPath = "/swagger/openapi.json"

//go:embed embed/*
var content embed.FS

// ServeSwagger регистрирует Swagger UI и OpenAPI документ на mux:
//   - GET /swagger            - редирект на /swagger/
//   - GET /swagger/           - Swagger UI (index.html)
//   - GET /swagger/openapi.json - описание маршрутов /api/v1
func ServeSwagger(mux *http.ServeMux) error {
	ui, err := fs.Sub(content, "embed")
	if err != nil {
		return err
	}

	mux.Handle("GET /swagger/", http.StripPrefix("/swagger", http.FileServer(http.FS(ui))))
	mux.HandleFunc("GET /swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	log.Println("Swagger UI enabled at /swagger/")
	log.Printf("OpenAPI document available at %s", SpecPath)
	return nil
}
