package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skinvault/skinvault/internal/manifest"
)

type Asset struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Weapon      string `json:"weapon,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	File        string `json:"file"`
	Texture     string `json:"texture,omitempty"`
	Preview     string `json:"preview,omitempty"`
	Size        int64  `json:"size"`
	Required    bool   `json:"required"`
}

type Manifest struct {
	Version        int     `json:"version"`
	Updated        string  `json:"updated"`
	PreviewBaseURL string  `json:"previewBaseUrl"`
	Assets         []Asset `json:"assets"`
}

func toManifest(m manifest.Manifest) Manifest {
	assets := make([]Asset, 0, len(m.Assets))
	for _, a := range m.Assets {
		assets = append(assets, Asset{
			ID:          a.ID,
			Type:        string(a.Type),
			Weapon:      string(a.Weapon),
			Name:        a.Name,
			Description: a.Description,
			File:        a.File,
			Texture:     a.Texture,
			Preview:     a.Preview,
			Size:        a.Size,
			Required:    a.Required,
		})
	}
	return Manifest{
		Version:        m.Version,
		Updated:        m.Updated.Format(time.RFC3339),
		PreviewBaseURL: m.PreviewBaseURL,
		Assets:         assets,
	}
}

func (s *Server) GetManifest(ctx echo.Context) error {
	m := s.server.GetManifest(ctx.Request().Context())
	return ctx.JSON(200, Res{Data: toManifest(m)})
}

func (s *Server) RefreshManifest(ctx echo.Context) error {
	m, err := s.server.RefreshManifest(ctx.Request().Context())
	if err != nil {
		return s.errorJSON(ctx, err)
	}
	return ctx.JSON(200, Res{Data: toManifest(m)})
}
