package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/skinvault/skinvault/internal/filestorage"
	"github.com/skinvault/skinvault/internal/formdata"
	"github.com/skinvault/skinvault/internal/usecase"
)

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}

// errorJSON maps the domain error taxonomy onto status codes: validation
// errors (including a missing multipart boundary) are the client's fault,
// sandbox violations are forbidden, missing files are 404, everything else
// is internal. A failure reading the request body lands in the default
// branch: it is a transport problem, not a malformed request.
func (s *Server) errorJSON(ctx echo.Context, err error) error {
	var ve usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return ctx.JSON(422, map[string]string{"error": ve.Error()})
	case errors.Is(err, formdata.ErrNoBoundary):
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	case errors.Is(err, filestorage.ErrPathEscapesRoot):
		return ctx.JSON(403, map[string]string{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		return ctx.JSON(404, map[string]string{"error": err.Error()})
	default:
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}
}
