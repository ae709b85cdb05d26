package player

import (
	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// Player keeps one slot showing the current clip while the other preloads the next.
// It is driven from the engine goroutine and never chooses the next index itself.
type Player struct {
	logger  *zap.Logger
	backend domain.SlotBackend
	slots   map[domain.Slot]*domain.SlotState
	active  domain.Slot
}

// NewPlayer creates a player with both slots empty
func NewPlayer(logger *zap.Logger, backend domain.SlotBackend) *Player {
	return &Player{
		logger:  logger,
		backend: backend,
		slots: map[domain.Slot]*domain.SlotState{
			domain.SlotA: {LoadedIndex: domain.NoVideo},
			domain.SlotB: {LoadedIndex: domain.NoVideo},
		},
		active: domain.SlotA,
	}
}

// Events returns the backend's playback notifications
func (p *Player) Events() <-chan domain.PlaybackEvent {
	return p.backend.Events()
}

// Slot returns a copy of a slot's state
func (p *Player) Slot(s domain.Slot) domain.SlotState {
	return *p.slots[s]
}

// Sync brings both slots in line with the snapshot
func (p *Player) Sync(snap domain.Snapshot, videos []domain.VideoItem) {
	p.active = snap.State.ActiveSlot
	inactive := p.active.Other()
	n := len(videos)

	if n > 0 {
		cur := snap.State.CurrentVideoIndex % n
		p.assign(p.active, cur, videos[cur].URL)

		if n > 1 {
			next := (cur + 1) % n
			p.assign(inactive, next, videos[next].URL)
		}
	}

	activeState := p.slots[p.active]
	if snap.MonitorOn && snap.State.Mode == domain.ModeVideo && n > 0 && activeState.URL != "" {
		p.stop(inactive)
		if !activeState.Playing {
			p.logger.Debug("Starting playback",
				zap.String("slot", string(p.active)),
				zap.Int("index", activeState.LoadedIndex))
			p.backend.Play(p.active)
			activeState.Playing = true
		}
		return
	}

	p.stop(domain.SlotA)
	p.stop(domain.SlotB)
}

// Observe records a playback event and reports whether it ends the active clip
func (p *Player) Observe(ev domain.PlaybackEvent) bool {
	if ev.Kind == domain.PlaybackStarted {
		return false
	}

	slot, ok := p.slots[ev.Slot]
	if !ok {
		return false
	}
	if ev.Index != slot.LoadedIndex || !slot.Playing {
		p.logger.Debug("Ignoring stale playback event",
			zap.String("slot", string(ev.Slot)),
			zap.Int("index", ev.Index),
			zap.Int("loadedIndex", slot.LoadedIndex))
		return false
	}

	slot.Playing = false

	if ev.Kind == domain.PlaybackErrored {
		p.logger.Warn("Playback failed, advancing",
			zap.String("slot", string(ev.Slot)),
			zap.String("url", slot.URL),
			zap.Error(ev.Err))
	}

	return ev.Slot == p.active
}

// Halt stops both slots, used on shutdown
func (p *Player) Halt() {
	p.stop(domain.SlotA)
	p.stop(domain.SlotB)
}

// Forget drops what both slots hold so the next Sync reloads them
func (p *Player) Forget() {
	for _, slot := range p.slots {
		slot.LoadedIndex = domain.NoVideo
		slot.URL = ""
	}
}

func (p *Player) assign(s domain.Slot, index int, url string) {
	slot := p.slots[s]
	if slot.LoadedIndex == index {
		return
	}

	p.stop(s)
	p.logger.Debug("Loading clip",
		zap.String("slot", string(s)),
		zap.Int("index", index),
		zap.String("url", url))
	p.backend.Load(s, index, url)
	slot.LoadedIndex = index
	slot.URL = url
}

func (p *Player) stop(s domain.Slot) {
	slot := p.slots[s]
	if !slot.Playing {
		return
	}
	p.backend.Stop(s)
	slot.Playing = false
}
