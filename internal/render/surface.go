package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/genricoloni/ledboard/internal/processor"
	"go.uber.org/zap"
)

// Surface paints snapshots on the panel.
// A frame is only composed when the visible content changed.
type Surface struct {
	logger    *zap.Logger
	composer  domain.Composer
	presenter domain.Presenter
	lastKey   string
}

// NewSurface creates a render surface
func NewSurface(logger *zap.Logger, composer domain.Composer, presenter domain.Presenter) *Surface {
	return &Surface{
		logger:    logger,
		composer:  composer,
		presenter: presenter,
	}
}

// Render composes and presents the frame for snap if it differs from the last one shown
func (s *Surface) Render(ctx context.Context, snap domain.Snapshot) error {
	key := frameKey(snap)
	if key == s.lastKey {
		return nil
	}

	path, err := s.composer.Compose(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to compose frame: %w", err)
	}

	if err := s.presenter.Present(ctx, path); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}

	s.lastKey = key
	s.logger.Debug("Frame shown", zap.String("key", key))
	return nil
}

// frameKey identifies what a snapshot looks like on screen
func frameKey(snap domain.Snapshot) string {
	scene := processor.SceneOf(snap)
	if scene != processor.SceneBirthday {
		return string(scene)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", scene, snap.State.PageStartIndex)
	for _, p := range snap.Visible {
		b.WriteString(":")
		b.WriteString(p.Name)
		b.WriteString("|")
		b.WriteString(p.Department)
	}
	return b.String()
}
