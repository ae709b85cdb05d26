package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/genricoloni/ledboard/internal/player"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fakeSource struct {
	mu         sync.Mutex
	roster     []domain.Person
	videos     []domain.VideoItem
	rosterErr  error
	fetches    int
	subscriber func()
}

func (s *fakeSource) FetchRoster(ctx context.Context) ([]domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.roster, s.rosterErr
}

func (s *fakeSource) FetchVideos(ctx context.Context) ([]domain.VideoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videos, nil
}

func (s *fakeSource) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriber = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subscriber = nil
	}
}

func (s *fakeSource) fire() {
	s.mu.Lock()
	fn := s.subscriber
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *fakeSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []string
	events chan domain.PlaybackEvent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(chan domain.PlaybackEvent, 4)}
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) Load(slot domain.Slot, index int, url string) {
	b.record(fmt.Sprintf("load %s %d", slot, index))
}
func (b *fakeBackend) Play(slot domain.Slot)               { b.record("play " + string(slot)) }
func (b *fakeBackend) Stop(slot domain.Slot)               { b.record("stop " + string(slot)) }
func (b *fakeBackend) Events() <-chan domain.PlaybackEvent { return b.events }

func (b *fakeBackend) take() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.calls
	b.calls = nil
	return out
}

type fakeRenderer struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (r *fakeRenderer) Render(ctx context.Context, snap domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *fakeRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

type fakePower struct {
	mu    sync.Mutex
	calls []bool
}

func (p *fakePower) SetPower(ctx context.Context, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, on)
	return nil
}

func (p *fakePower) last() (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return false, false
	}
	return p.calls[len(p.calls)-1], true
}

type testConfig struct{}

func (testConfig) GetTickInterval() time.Duration    { return time.Hour }
func (testConfig) GetRefreshInterval() time.Duration { return time.Hour }

type harness struct {
	engine   *Engine
	clock    *fakeClock
	source   *fakeSource
	backend  *fakeBackend
	renderer *fakeRenderer
	power    *fakePower
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.May, 13, hour, minute, 0, 0, time.UTC)
}

func people(n int) []domain.Person {
	out := make([]domain.Person, n)
	for i := range out {
		out[i] = domain.Person{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Person %d", i)}
	}
	return out
}

func clips(urls ...string) []domain.VideoItem {
	out := make([]domain.VideoItem, len(urls))
	for i, u := range urls {
		out[i] = domain.VideoItem{URL: u, Priority: 10}
	}
	return out
}

func newHarness(now time.Time, source *fakeSource) *harness {
	h := &harness{
		clock:    &fakeClock{t: now},
		source:   source,
		backend:  newFakeBackend(),
		renderer: &fakeRenderer{},
		power:    &fakePower{},
	}
	logger := zap.NewNop()
	h.engine = NewEngine(logger, testConfig{}, h.clock, source,
		player.NewPlayer(logger, h.backend), h.renderer, h.power)
	return h
}

func equalCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected backend calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected backend calls %v, got %v", want, got)
		}
	}
}

func TestEngine_InitialSnapshotIsLoading(t *testing.T) {
	h := newHarness(at(14, 0), &fakeSource{})

	snap := h.engine.Snapshot()
	if snap.Loaded {
		t.Error("snapshot should not be loaded before the first fetch")
	}
	if snap.State.Mode != domain.ModeVideo {
		t.Errorf("expected video mode in the afternoon, got %s", snap.State.Mode)
	}
}

func TestEngine_RefreshInVideoMode(t *testing.T) {
	h := newHarness(at(14, 0), &fakeSource{
		roster: people(3),
		videos: clips("a.mp4", "b.mp4"),
	})

	h.engine.refresh(context.Background())

	snap := h.engine.Snapshot()
	if !snap.Loaded || snap.State.Mode != domain.ModeVideo {
		t.Fatalf("expected loaded video snapshot, got %+v", snap)
	}
	equalCalls(t, h.backend.take(), "load A 0", "load B 1", "play A")

	if on, ok := h.power.last(); !ok || !on {
		t.Error("panel should be powered during operating hours")
	}
	if h.renderer.count() != 1 {
		t.Errorf("expected one render, got %d", h.renderer.count())
	}
	if h.engine.pageKey.active {
		t.Error("page timer must not run in video mode")
	}
}

func TestEngine_RefreshInBirthdayMode(t *testing.T) {
	h := newHarness(at(9, 0), &fakeSource{
		roster: people(7),
		videos: clips("a.mp4", "b.mp4"),
	})

	h.engine.refresh(context.Background())

	snap := h.engine.Snapshot()
	if snap.State.Mode != domain.ModeBirthday {
		t.Fatalf("expected birthday mode, got %s", snap.State.Mode)
	}
	if len(snap.Visible) != 6 {
		t.Errorf("expected a full first page, got %d names", len(snap.Visible))
	}
	// Both slots preload while names are shown
	equalCalls(t, h.backend.take(), "load A 0", "load B 1")

	if h.engine.pageKey != (pageKey{active: true, count: 7}) {
		t.Errorf("unexpected page key %+v", h.engine.pageKey)
	}
}

func TestEngine_PageTimerAdvancesPage(t *testing.T) {
	h := newHarness(at(9, 0), &fakeSource{
		roster: people(7),
		videos: clips("a.mp4"),
	})
	h.engine.refresh(context.Background())

	h.clock.Set(at(9, 0).Add(5 * time.Second))
	h.engine.onPageTimer(context.Background())

	snap := h.engine.Snapshot()
	if snap.State.PageStartIndex != 6 {
		t.Errorf("expected second page, got start %d", snap.State.PageStartIndex)
	}
	if len(snap.Visible) != 1 {
		t.Errorf("expected one name on the last page, got %d", len(snap.Visible))
	}
	if h.engine.pageKey == unarmed {
		t.Error("page timer should be re-armed after firing")
	}
}

func TestEngine_FetchErrorDegradesToEmpty(t *testing.T) {
	h := newHarness(at(9, 0), &fakeSource{
		rosterErr: errors.New("database is locked"),
		videos:    clips("a.mp4"),
	})

	h.engine.refresh(context.Background())

	snap := h.engine.Snapshot()
	if !snap.Loaded || snap.PersonCount != 0 {
		t.Fatalf("expected loaded snapshot with no people, got %+v", snap)
	}
	if snap.State.Mode != domain.ModeVideo {
		t.Errorf("empty roster must fall back to video, got %s", snap.State.Mode)
	}
}

func TestEngine_PlaybackEndAdvancesRotation(t *testing.T) {
	h := newHarness(at(14, 0), &fakeSource{videos: clips("a.mp4", "b.mp4", "c.mp4")})
	h.engine.refresh(context.Background())
	h.backend.take()

	// A stale event from the preloading slot is ignored
	h.engine.onPlayback(context.Background(), domain.PlaybackEvent{Slot: domain.SlotB, Index: 1, Kind: domain.PlaybackEnded})
	if got := h.backend.take(); len(got) != 0 {
		t.Fatalf("stale event should not touch the backend, got %v", got)
	}

	h.engine.onPlayback(context.Background(), domain.PlaybackEvent{Slot: domain.SlotA, Index: 0, Kind: domain.PlaybackEnded})

	snap := h.engine.Snapshot()
	if snap.State.CurrentVideoIndex != 1 || snap.State.ActiveSlot != domain.SlotB {
		t.Fatalf("expected clip 1 on slot B, got %+v", snap.State)
	}
	// B already holds clip 1; A preloads clip 2
	equalCalls(t, h.backend.take(), "load A 2", "play B")
}

func TestEngine_VideoListChangeReloads(t *testing.T) {
	source := &fakeSource{videos: clips("a.mp4", "b.mp4")}
	h := newHarness(at(14, 0), source)
	h.engine.refresh(context.Background())
	h.backend.take()

	// Unchanged list: nothing reloads
	h.engine.refresh(context.Background())
	if got := h.backend.take(); len(got) != 0 {
		t.Fatalf("unchanged list should not reload, got %v", got)
	}

	source.mu.Lock()
	source.videos = clips("x.mp4", "y.mp4")
	source.mu.Unlock()
	h.engine.refresh(context.Background())

	equalCalls(t, h.backend.take(), "stop A", "load A 0", "load B 1", "play A")
}

func TestEngine_MonitorOffPowersDown(t *testing.T) {
	h := newHarness(at(14, 0), &fakeSource{videos: clips("a.mp4")})
	h.engine.refresh(context.Background())
	h.backend.take()

	h.clock.Set(at(20, 0))
	h.engine.onTick(context.Background())

	if on, _ := h.power.last(); on {
		t.Error("panel should be powered down after hours")
	}
	equalCalls(t, h.backend.take(), "stop A")
}

func TestEngine_StartStop(t *testing.T) {
	source := &fakeSource{roster: people(2), videos: clips("a.mp4")}
	h := newHarness(at(14, 0), source)
	h.engine.debounce = 10 * time.Millisecond

	if err := h.engine.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	waitFor(t, func() bool { return h.engine.Snapshot().Loaded })

	// A burst of notifications collapses into one refetch
	source.fire()
	source.fire()
	source.fire()
	waitFor(t, func() bool { return source.fetchCount() >= 2 })

	if err := h.engine.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}

	source.mu.Lock()
	subscribed := source.subscriber != nil
	source.mu.Unlock()
	if subscribed {
		t.Error("engine should unsubscribe on stop")
	}
	if on, _ := h.power.last(); !on {
		t.Error("panel power should be restored on stop")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
