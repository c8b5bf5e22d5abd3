package config

// Environment keys.
const (
	ENV_KEY_APP_ENV          = "APP_ENV"
	ENV_KEY_PORT             = "PORT"
	ENV_KEY_LOG_LEVEL        = "LOG_LEVEL"
	ENV_KEY_ASSET_ROOT       = "ASSET_ROOT"
	ENV_KEY_MANIFEST_PATH    = "MANIFEST_PATH"
	ENV_KEY_PREVIEW_BASE_URL = "PREVIEW_BASE_URL"
	ENV_KEY_EXPORT_REMOTE    = "EXPORT_REMOTE"
	ENV_KEY_EXPORT_BRANCH    = "EXPORT_BRANCH"
)

// Defaults applied when the corresponding env key is unset.
const (
	DEFAULT_PORT             = 8080
	DEFAULT_ASSET_ROOT       = "GameAssets"
	DEFAULT_PREVIEW_BASE_URL = "/files/Previews"
	DEFAULT_EXPORT_REMOTE    = "origin"
	DEFAULT_EXPORT_BRANCH    = "main"
)
