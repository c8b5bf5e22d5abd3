package server

import "github.com/labstack/echo/v4"

type DeleteAssetRequest struct {
	Path string `query:"path" validate:"required"`
}

func (s *Server) DeleteAsset(ctx echo.Context) error {
	var req DeleteAssetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	if err := s.server.DeleteAsset(ctx.Request().Context(), req.Path); err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.NoContent(204)
}
