package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/genricoloni/ledboard/internal/player"
	"github.com/genricoloni/ledboard/internal/scheduler"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const debounceDuration = 500 * time.Millisecond

// Config provides the engine's periodic intervals
type Config interface {
	GetTickInterval() time.Duration
	GetRefreshInterval() time.Duration
}

// pageKey governs the page timer; the timer is only reset when it changes
type pageKey struct {
	active bool
	count  int
}

// unarmed never equals a real key, so the next apply re-arms the timer
var unarmed = pageKey{count: -1}

// Engine orchestrates the display pipeline.
// It feeds clock ticks, data changes, page timer expiries and playback events
// to the scheduler, then hands every snapshot to the power controller, the
// render surface and the player. All of that happens on one goroutine.
type Engine struct {
	logger   *zap.Logger
	cfg      Config
	clock    domain.Clock
	source   domain.DataSource
	player   *player.Player
	renderer domain.Renderer
	power    domain.PowerController

	sched    *scheduler.Scheduler
	videos   []domain.VideoItem
	snapshot atomic.Pointer[domain.Snapshot]

	pageTimer *time.Timer
	pageKey   pageKey
	debounce  time.Duration

	changes     chan struct{}
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	cfg Config,
	clock domain.Clock,
	source domain.DataSource,
	play *player.Player,
	renderer domain.Renderer,
	power domain.PowerController,
) *Engine {
	now := clock.Now()
	e := &Engine{
		logger:    logger,
		cfg:       cfg,
		clock:     clock,
		source:    source,
		player:    play,
		renderer:  renderer,
		power:     power,
		sched:     scheduler.New(logger.Named("scheduler"), now),
		pageTimer: time.NewTimer(time.Hour),
		pageKey:   unarmed,
		debounce:  debounceDuration,
		changes:   make(chan struct{}, 1),
	}
	e.pageTimer.Stop()

	snap := e.sched.Snapshot(now)
	e.snapshot.Store(&snap)
	return e
}

// Snapshot returns the most recently applied snapshot; safe from any goroutine
func (e *Engine) Snapshot() domain.Snapshot {
	return *e.snapshot.Load()
}

// Start subscribes to data changes and launches the event loop.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...",
		zap.Duration("tickInterval", e.cfg.GetTickInterval()),
		zap.Duration("refreshInterval", e.cfg.GetRefreshInterval()))

	e.unsubscribe = e.source.Subscribe(e.notifyChange)

	// The lifecycle context only covers startup
	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.runLoop(loopCtx)
	return nil
}

// Stop cancels the loop, waits for it, unsubscribes and halts playback.
// The panel is switched back on so the host is left usable.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.cancel == nil {
		return nil
	}
	e.cancel()

	if e.unsubscribe != nil {
		e.unsubscribe()
	}

	var err error
	select {
	case <-e.done:
		e.player.Halt()
		e.pageTimer.Stop()
	case <-ctx.Done():
		// The loop still owns the player; leave it alone
		err = fmt.Errorf("failed to wait for engine loop: %w", ctx.Err())
	}

	if perr := e.power.SetPower(ctx, true); perr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to restore display power: %w", perr))
	}
	return err
}

// notifyChange is the data source callback; it never blocks the notifier
func (e *Engine) notifyChange() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// runLoop is the single event processing loop
func (e *Engine) runLoop(ctx context.Context) {
	defer close(e.done)

	tick := time.NewTicker(e.cfg.GetTickInterval())
	defer tick.Stop()
	refresh := time.NewTicker(e.cfg.GetRefreshInterval())
	defer refresh.Stop()

	// Debouncing: bursts of admin writes cause a single refetch
	debounce := time.NewTimer(e.debounce)
	debounce.Stop()
	defer debounce.Stop()

	// Loading frame first, then the initial fetch
	e.apply(ctx, e.clock.Now())
	e.refresh(ctx)

	events := e.player.Events()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return

		case <-tick.C:
			e.onTick(ctx)

		case <-refresh.C:
			e.refresh(ctx)

		case <-e.changes:
			e.logger.Debug("Data change received, debouncing...")
			debounce.Reset(e.debounce)

		case <-debounce.C:
			e.refresh(ctx)

		case <-e.pageTimer.C:
			e.onPageTimer(ctx)

		case ev, ok := <-events:
			if !ok {
				e.logger.Info("Playback events channel closed")
				events = nil
				continue
			}
			e.onPlayback(ctx, ev)
		}
	}
}

// refresh refetches both lists; a failed fetch degrades to an empty list
func (e *Engine) refresh(ctx context.Context) {
	people, err := e.source.FetchRoster(ctx)
	if err != nil {
		e.logger.Error("Failed to fetch roster, showing none", zap.Error(err))
		people = nil
	}

	videos, err := e.source.FetchVideos(ctx)
	if err != nil {
		e.logger.Error("Failed to fetch videos, showing none", zap.Error(err))
		videos = nil
	}

	if !sameURLs(e.videos, videos) {
		e.logger.Info("Video list changed", zap.Int("videos", len(videos)))
		e.player.Forget()
	}
	e.videos = videos

	now := e.clock.Now()
	e.sched.SetRoster(now, people)
	e.sched.SetVideos(now, videos)
	e.apply(ctx, now)
}

func (e *Engine) onTick(ctx context.Context) {
	now := e.clock.Now()
	e.sched.Tick(now)
	e.apply(ctx, now)
}

func (e *Engine) onPageTimer(ctx context.Context) {
	now := e.clock.Now()
	e.sched.AdvancePage(now)
	e.pageKey = unarmed
	e.apply(ctx, now)
}

func (e *Engine) onPlayback(ctx context.Context, ev domain.PlaybackEvent) {
	if !e.player.Observe(ev) {
		return
	}

	now := e.clock.Now()
	e.sched.VideoEnded(now)
	e.apply(ctx, now)
}

// apply publishes the snapshot and brings every output in line with it
func (e *Engine) apply(ctx context.Context, now time.Time) {
	snap := e.sched.Snapshot(now)
	e.snapshot.Store(&snap)

	if err := e.power.SetPower(ctx, snap.MonitorOn); err != nil {
		e.logger.Warn("Failed to switch display power", zap.Error(err))
	}

	if err := e.renderer.Render(ctx, snap); err != nil {
		e.logger.Error("Failed to render frame", zap.Error(err))
	}

	e.player.Sync(snap, e.videos)
	e.armPageTimer(now, snap.PersonCount)
}

func (e *Engine) armPageTimer(now time.Time, count int) {
	period, active := e.sched.PageTimer(now)
	key := pageKey{active: active, count: count}
	if key == e.pageKey {
		return
	}
	e.pageKey = key

	e.pageTimer.Stop()
	if active {
		e.pageTimer.Reset(period)
		e.logger.Debug("Page timer armed", zap.Duration("period", period), zap.Int("people", key.count))
	}
}

func sameURLs(a, b []domain.VideoItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].URL != b[i].URL {
			return false
		}
	}
	return true
}
