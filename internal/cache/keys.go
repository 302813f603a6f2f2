package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	settingsKey      = "settings"
	profileKeyPrefix = "profile:%s"
)

const (
	SettingsTTL = 1 * time.Minute
	ProfileTTL  = 5 * time.Minute
)

// SettingsKey returns the cache key for the global settings row.
func SettingsKey() string {
	return settingsKey
}

// ProfileKey returns the cache key for a public profile by username.
func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

// Invalidate removes a key from the cache. A nil client is a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateSettings drops the cached settings row.
func InvalidateSettings(ctx context.Context) {
	Invalidate(ctx, SettingsKey())
}

// InvalidateProfile drops the cached public profile for a username.
func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}
