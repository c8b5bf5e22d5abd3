package usecase

import (
	"strconv"
	"time"
)

// Health returns a map of health status information.
func (u *Usecase) Health() map[string]string {
	m := u.store.Current()
	return map[string]string{
		"status":       "up",
		"asset_root":   u.storage.Root(),
		"assets":       strconv.Itoa(len(m.Assets)),
		"manifest_age": time.Since(m.Updated).Truncate(time.Second).String(),
	}
}
