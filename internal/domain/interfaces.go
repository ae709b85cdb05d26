package domain

import (
	"context"
	"time"
)

// Clock abstracts time.Now() to allow deterministic testing
type Clock interface {
	Now() time.Time
}

// DataSource provides the roster and the clip list to the display.
// Implementations must filter the roster to today's birthdays.
type DataSource interface {
	// FetchRoster returns the people celebrating today
	FetchRoster(ctx context.Context) ([]Person, error)

	// FetchVideos returns the clip rotation in playback order
	FetchVideos(ctx context.Context) ([]VideoItem, error)

	// Subscribe registers fn to be invoked whenever the underlying records change.
	// The returned function removes the subscription.
	Subscribe(fn func()) (cancel func())
}

// SlotBackend drives the two physical video buffers.
// Load must not block; its outcome is reported through Events.
//
//go:generate mockgen -destination=../player/mocks/slot_backend_mock.go -package=mocks github.com/genricoloni/ledboard/internal/domain SlotBackend
type SlotBackend interface {
	// Load assigns url (the clip at index) to slot and starts loading it
	Load(slot Slot, index int, url string)

	// Play starts the slot from the beginning
	Play(slot Slot)

	// Stop pauses the slot and rewinds it
	Stop(slot Slot)

	// Events returns a read-only channel of playback notifications
	Events() <-chan PlaybackEvent
}

// Composer renders the frame matching a snapshot
type Composer interface {
	// Compose writes the frame to disk and returns its path
	Compose(ctx context.Context, snap Snapshot) (string, error)
}

// Presenter shows a still frame on the panel
type Presenter interface {
	// Present displays the image at imagePath
	Present(ctx context.Context, imagePath string) error
}

// Renderer paints a snapshot; it holds no business logic
type Renderer interface {
	Render(ctx context.Context, snap Snapshot) error
}

// PowerController switches the physical panel on and off
type PowerController interface {
	// SetPower is idempotent; repeated calls with the same value are no-ops
	SetPower(ctx context.Context, on bool) error
}

// Config defines the interface for application configuration used by the frame pipeline
type Config interface {
	// GetOutputDir returns the directory for generated frames
	GetOutputDir() string

	// GetLogoPath returns the optional watermark image path
	GetLogoPath() string
}
