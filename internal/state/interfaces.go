package state

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyName = errors.New("preference name is empty")

// Store keeps small named UI preferences. A preference may carry an expiry;
// expired rows read as absent until Purge removes them.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Set(ctx context.Context, name, value string, ttl time.Duration) error
	Get(ctx context.Context, name string) (string, bool, error)
	Delete(ctx context.Context, name string) (bool, error)
	Purge(ctx context.Context, now time.Time) (int64, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	Close() error
}

// Preference names written by the app.
const (
	PrefStyleVariant = "ui.style_variant"
	PrefMotionLevel  = "ui.motion_level"
	PrefMouseScope   = "ui.mouse_scope"
)
