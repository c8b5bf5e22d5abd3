package server

import (
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"
)

type ManifestEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Updated    string `json:"updated"`
	AssetCount int    `json:"asset_count"`
}

// manifestEventsHandler streams manifest-update events to a websocket
// client until the client goes away.
func (s *Server) manifestEventsHandler(ctx echo.Context) error {
	conn, err := websocket.Accept(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	reqCtx := ctx.Request().Context()
	ch, cancel := s.server.StreamManifestEvents(reqCtx)
	defer cancel()

	for {
		select {
		case <-reqCtx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case ev, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil
			}
			msg := ManifestEvent{
				ID:         ev.ID,
				Type:       ev.Type,
				Updated:    ev.Updated.Format(time.RFC3339),
				AssetCount: ev.AssetCount,
			}
			if err := wsjson.Write(reqCtx, conn, msg); err != nil {
				return nil
			}
		}
	}
}
