package server

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/skinvault/skinvault/internal/formdata"
	"github.com/skinvault/skinvault/internal/usecase"
)

// readParts decodes the raw request body with the in-house multipart
// scanner. The boundary token comes from targeted matching on the
// Content-Type header; a missing token is the client's fault, a body read
// failure is not, and errorJSON keeps the two apart.
func (s *Server) readParts(ctx echo.Context) ([]formdata.Part, error) {
	boundary, err := formdata.Boundary(ctx.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return formdata.Decode(body, boundary), nil
}

func partsByName(parts []formdata.Part) map[string]formdata.Part {
	m := make(map[string]formdata.Part, len(parts))
	for _, p := range parts {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p
		}
	}
	return m
}

type UploadSkinRequest struct {
	Weapon   string `validate:"required,oneof=ar awp shotgun smg"`
	Filename string `validate:"required"`
}

func (s *Server) UploadSkin(ctx echo.Context) error {
	parts, err := s.readParts(ctx)
	if err != nil {
		return s.errorJSON(ctx, err)
	}
	fields := partsByName(parts)

	req := UploadSkinRequest{
		Weapon:   string(fields["weapon"].Data),
		Filename: fields["file"].Filename,
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	file, err := s.server.UploadSkin(ctx.Request().Context(), usecase.UploadSkinOption{
		Weapon:   req.Weapon,
		Filename: req.Filename,
		Data:     fields["file"].Data,
		Preview:  fields["preview"].Data,
	})
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: map[string]string{"file": file}})
}

type UploadModelRequest struct {
	Weapon   string `validate:"required,oneof=ar awp shotgun smg"`
	Filename string `validate:"required"`
}

func (s *Server) UploadModel(ctx echo.Context) error {
	parts, err := s.readParts(ctx)
	if err != nil {
		return s.errorJSON(ctx, err)
	}
	fields := partsByName(parts)

	req := UploadModelRequest{
		Weapon:   string(fields["weapon"].Data),
		Filename: fields["model"].Filename,
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	file, err := s.server.UploadModel(ctx.Request().Context(), usecase.UploadModelOption{
		Weapon:          req.Weapon,
		Filename:        req.Filename,
		Data:            fields["model"].Data,
		TextureFilename: fields["texture"].Filename,
		Texture:         fields["texture"].Data,
		Preview:         fields["preview"].Data,
	})
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: map[string]string{"file": file}})
}

type UploadSpecialRequest struct {
	Filename string `validate:"required"`
}

func (s *Server) UploadSpecial(ctx echo.Context) error {
	parts, err := s.readParts(ctx)
	if err != nil {
		return s.errorJSON(ctx, err)
	}
	fields := partsByName(parts)

	req := UploadSpecialRequest{
		Filename: fields["file"].Filename,
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	file, err := s.server.UploadSpecial(ctx.Request().Context(), usecase.UploadSpecialOption{
		Filename: req.Filename,
		Data:     fields["file"].Data,
		Preview:  fields["preview"].Data,
	})
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: map[string]string{"file": file}})
}

type SavePreviewRequest struct {
	Type   string `validate:"required,oneof=skin model special"`
	Name   string `validate:"required"`
	Weapon string `validate:"omitempty,oneof=ar awp shotgun smg"`
}

func (s *Server) SavePreview(ctx echo.Context) error {
	parts, err := s.readParts(ctx)
	if err != nil {
		return s.errorJSON(ctx, err)
	}
	fields := partsByName(parts)

	req := SavePreviewRequest{
		Type:   string(fields["type"].Data),
		Name:   string(fields["name"].Data),
		Weapon: string(fields["weapon"].Data),
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	file, err := s.server.SavePreview(ctx.Request().Context(), usecase.SavePreviewOption{
		Type:    req.Type,
		Name:    req.Name,
		Weapon:  req.Weapon,
		Preview: fields["preview"].Data,
	})
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: map[string]string{"preview": file}})
}
