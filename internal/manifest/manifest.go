package manifest

import (
	"time"

	"github.com/skinvault/skinvault/internal/scanner"
)

// Version is the only manifest schema version this build reads or writes.
const Version = 1

// Manifest is the persisted snapshot of the asset tree. It is rebuilt
// wholesale on every regeneration; assets are never patched incrementally.
type Manifest struct {
	Version        int             `json:"version"`
	Updated        time.Time       `json:"updated"`
	PreviewBaseURL string          `json:"previewBaseUrl"`
	Assets         []scanner.Asset `json:"assets"`
}

// Event is published to subscribers after each successful regeneration.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Updated    time.Time `json:"updated"`
	AssetCount int       `json:"asset_count"`
}

const EventManifestUpdated = "manifest.updated"
