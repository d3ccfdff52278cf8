package web

import (
	"embed"
	"fmt"
	"mime"
	"path"
)

//go:embed static
var static embed.FS

// Asset devuelve el contenido y el content-type de un fichero de la página
func Asset(name string) ([]byte, string, error) {
	data, err := static.ReadFile(path.Join("static", name))
	if err != nil {
		return nil, "", fmt.Errorf("asset %s: %w", name, err)
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
