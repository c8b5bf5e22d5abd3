package server

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// contentTypes is the fixed extension lookup used for file serving.
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
	".json": "application/json",
}

func contentTypeFor(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "application/octet-stream"
	}
	if ct, ok := contentTypes[strings.ToLower(path[i:])]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *Server) GetFile(ctx echo.Context) error {
	rel := ctx.Param("*")

	data, err := s.server.GetFile(ctx.Request().Context(), rel)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.Blob(200, contentTypeFor(rel), data)
}
