// Package web содержит браузерный клиент, собранный в бинарник через go:embed.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // embed с фиксированным путем, ошибки быть не может
	}
	return http.FileServer(http.FS(sub))
}
