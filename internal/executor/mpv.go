package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

const (
	_defaultErrorHoldoff = 3 * time.Second
	_eventBuffer         = 16
)

// Downloader fetches remote clips into local files
type Downloader interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// PlayerConfig describes the external player
type PlayerConfig interface {
	GetPlayerCommand() []string
	GetCacheDir() string
}

// slotRun is one clip assigned to a slot
type slotRun struct {
	index int
	url   string

	ready   chan struct{} // closed once path or loadErr is set
	path    string
	loadErr error

	cancelLoad context.CancelFunc
	cancelPlay context.CancelFunc
}

// MPVBackend plays clips with an external player process, one process per slot.
// Remote clips are downloaded once into a cache directory.
type MPVBackend struct {
	logger     *zap.Logger
	downloader Downloader
	command    []string
	cacheDir   string
	holdoff    time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	slots  map[domain.Slot]*slotRun
	closed bool
	wg     sync.WaitGroup
	events chan domain.PlaybackEvent
}

// NewMPVBackend creates a backend running the configured player command
func NewMPVBackend(logger *zap.Logger, downloader Downloader, cfg PlayerConfig) *MPVBackend {
	ctx, cancel := context.WithCancel(context.Background())
	return &MPVBackend{
		logger:     logger,
		downloader: downloader,
		command:    cfg.GetPlayerCommand(),
		cacheDir:   cfg.GetCacheDir(),
		holdoff:    _defaultErrorHoldoff,
		ctx:        ctx,
		cancel:     cancel,
		slots:      make(map[domain.Slot]*slotRun),
		events:     make(chan domain.PlaybackEvent, _eventBuffer),
	}
}

// Events returns a read-only channel of playback notifications
func (b *MPVBackend) Events() <-chan domain.PlaybackEvent {
	return b.events
}

// Load resolves url in the background and assigns it to slot
func (b *MPVBackend) Load(slot domain.Slot, index int, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	if prev := b.slots[slot]; prev != nil {
		prev.cancelLoad()
		if prev.cancelPlay != nil {
			prev.cancelPlay()
		}
	}

	ctx, cancel := context.WithCancel(b.ctx)
	run := &slotRun{
		index:      index,
		url:        url,
		ready:      make(chan struct{}),
		cancelLoad: cancel,
	}
	b.slots[slot] = run

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer cancel()

		p, err := b.resolve(ctx, url)
		if err != nil && ctx.Err() == nil {
			b.logger.Warn("Failed to load clip",
				zap.String("slot", string(slot)),
				zap.Int("index", index),
				zap.String("url", url),
				zap.Error(err))
		}

		b.mu.Lock()
		run.path, run.loadErr = p, err
		b.mu.Unlock()
		close(run.ready)
	}()
}

// Play starts the slot's clip from the beginning once it is loaded.
// A clip that failed to load is reported as errored after the holdoff.
func (b *MPVBackend) Play(slot domain.Slot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	run := b.slots[slot]
	if b.closed || run == nil {
		return
	}

	if run.cancelPlay != nil {
		run.cancelPlay()
	}
	ctx, cancel := context.WithCancel(b.ctx)
	run.cancelPlay = cancel

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer cancel()
		b.play(ctx, slot, run)
	}()
}

// Stop terminates the slot's player process; the next Play starts over
func (b *MPVBackend) Stop(slot domain.Slot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if run := b.slots[slot]; run != nil && run.cancelPlay != nil {
		run.cancelPlay()
		run.cancelPlay = nil
	}
}

// Close stops every process and download, then closes the events channel
func (b *MPVBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
	close(b.events)

	b.logger.Info("Player backend stopped")
	return nil
}

func (b *MPVBackend) play(ctx context.Context, slot domain.Slot, run *slotRun) {
	select {
	case <-run.ready:
	case <-ctx.Done():
		return
	}

	if run.loadErr != nil {
		b.fail(ctx, slot, run.index, run.loadErr)
		return
	}

	b.emit(ctx, domain.PlaybackEvent{Slot: slot, Index: run.index, Kind: domain.PlaybackStarted})

	args := append(append([]string(nil), b.command[1:]...), run.path)
	cmd := exec.CommandContext(ctx, b.command[0], args...)

	b.logger.Debug("Starting player process",
		zap.String("slot", string(slot)),
		zap.Int("index", run.index),
		zap.String("path", run.path))

	err := cmd.Run()
	if ctx.Err() != nil {
		// Stopped on purpose
		return
	}
	if err != nil {
		b.fail(ctx, slot, run.index, fmt.Errorf("player exited: %w", err))
		return
	}

	b.emit(ctx, domain.PlaybackEvent{Slot: slot, Index: run.index, Kind: domain.PlaybackEnded})
}

// fail reports an error after the holdoff so a broken playlist cannot spin the loop
func (b *MPVBackend) fail(ctx context.Context, slot domain.Slot, index int, err error) {
	select {
	case <-time.After(b.holdoff):
	case <-ctx.Done():
		return
	}
	b.emit(ctx, domain.PlaybackEvent{Slot: slot, Index: index, Kind: domain.PlaybackErrored, Err: err})
}

func (b *MPVBackend) emit(ctx context.Context, ev domain.PlaybackEvent) {
	select {
	case b.events <- ev:
	case <-ctx.Done():
	}
}

// resolve maps a clip URL to a playable local file
func (b *MPVBackend) resolve(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		if _, err := os.Stat(url); err != nil {
			return "", fmt.Errorf("clip not found: %w", err)
		}
		return url, nil
	}

	sum := sha256.Sum256([]byte(url))
	ext := path.Ext(strings.SplitN(url, "?", 2)[0])
	dest := filepath.Join(b.cacheDir, hex.EncodeToString(sum[:])+ext)

	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to inspect cache: %w", err)
	}

	if _, err := b.downloader.Download(ctx, url, dest); err != nil {
		return "", fmt.Errorf("failed to download clip: %w", err)
	}
	return dest, nil
}
