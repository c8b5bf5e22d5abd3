package server

import "github.com/labstack/echo/v4"

type ExportRequest struct {
	Message string `json:"message"`
}

// ExportAssets triggers the version-control export. The command output and
// any failure pass through verbatim.
func (s *Server) ExportAssets(ctx echo.Context) error {
	var req ExportRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	out, err := s.server.ExportAssets(ctx.Request().Context(), req.Message)
	if err != nil {
		return ctx.JSON(500, map[string]string{
			"error":  err.Error(),
			"output": out,
		})
	}

	return ctx.JSON(200, Res{Data: map[string]string{"output": out}})
}
