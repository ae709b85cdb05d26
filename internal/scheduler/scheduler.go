package scheduler

import (
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// Scheduler is the display-mode state machine.
// It owns the DisplayState and holds no timers; callers feed it wall-clock
// time, data changes and playback completions from a single goroutine.
type Scheduler struct {
	logger *zap.Logger
	state  domain.DisplayState
	roster []domain.Person
	videos []domain.VideoItem

	loaded bool
	// birthdayTime as of the last evaluation; nil until data arrived
	lastBirthdayTime *bool
}

// New creates a scheduler whose initial mode follows the wall clock
func New(logger *zap.Logger, now time.Time) *Scheduler {
	mode := domain.ModeVideo
	if BirthdayWindow(now) {
		mode = domain.ModeBirthday
	}

	return &Scheduler{
		logger: logger,
		state: domain.DisplayState{
			Mode:                    mode,
			PageStartIndex:          0,
			CurrentVideoIndex:       0,
			ActiveSlot:              domain.SlotA,
			BirthdayWindowEnteredAt: now,
		},
	}
}

// State returns a copy of the display state
func (s *Scheduler) State() domain.DisplayState {
	return s.state
}

// SetRoster replaces the roster and re-evaluates the window rules
func (s *Scheduler) SetRoster(now time.Time, people []domain.Person) {
	s.roster = append([]domain.Person(nil), people...)
	s.loaded = true

	if s.state.PageStartIndex >= TotalPages(len(s.roster))*PageSize {
		s.state.PageStartIndex = 0
	}

	s.logger.Debug("Roster replaced", zap.Int("people", len(s.roster)))
	s.Tick(now)
}

// SetVideos replaces the clip list and re-evaluates the window rules
func (s *Scheduler) SetVideos(now time.Time, videos []domain.VideoItem) {
	s.videos = append([]domain.VideoItem(nil), videos...)
	s.loaded = true

	if s.state.CurrentVideoIndex >= len(s.videos) {
		s.state.CurrentVideoIndex = 0
	}

	s.logger.Debug("Video list replaced", zap.Int("videos", len(s.videos)))
	s.Tick(now)
}

// Tick applies the monitor and birthday window rules for now
func (s *Scheduler) Tick(now time.Time) {
	// Nothing moves while the panel is dark
	if !MonitorOn(now) || !s.loaded {
		return
	}

	birthdayTime := BirthdayWindow(now) && len(s.roster) > 0
	changed := s.lastBirthdayTime == nil || *s.lastBirthdayTime != birthdayTime
	s.lastBirthdayTime = &birthdayTime

	if !changed {
		return
	}

	switch {
	case birthdayTime && s.state.Mode == domain.ModeVideo:
		s.enterBirthday(now, "birthday window opened")
	case !birthdayTime && s.state.Mode == domain.ModeBirthday:
		s.enterVideo("birthday window closed")
	}
}

// AdvancePage moves to the next page of names, or hands over to video once a
// full cycle has been shown for long enough
func (s *Scheduler) AdvancePage(now time.Time) {
	if !MonitorOn(now) || s.state.Mode != domain.ModeBirthday || len(s.roster) == 0 {
		return
	}

	n := len(s.roster)
	next := s.state.PageStartIndex + PageSize

	if next >= n && len(s.videos) > 0 {
		elapsed := now.Sub(s.state.BirthdayWindowEnteredAt)
		if elapsed >= MinShowTime(n, now) {
			s.state.CurrentVideoIndex = 0
			s.state.PageStartIndex = 0
			s.enterVideo("birthday cycle complete")
			return
		}
	}

	if next >= TotalPages(n)*PageSize {
		next = 0
	}
	s.state.PageStartIndex = next
}

// VideoEnded advances the rotation after the active clip ended or failed
func (s *Scheduler) VideoEnded(now time.Time) {
	if !MonitorOn(now) || s.state.Mode != domain.ModeVideo || len(s.videos) == 0 {
		return
	}

	s.state.CurrentVideoIndex = (s.state.CurrentVideoIndex + 1) % len(s.videos)
	s.state.ActiveSlot = s.state.ActiveSlot.Other()

	if BirthdayWindow(now) && len(s.roster) > 0 {
		s.enterBirthday(now, "video ended inside birthday window")
		return
	}

	s.logger.Debug("Advanced video rotation",
		zap.Int("videoIndex", s.state.CurrentVideoIndex),
		zap.String("activeSlot", string(s.state.ActiveSlot)))
}

// PageTimer returns the rotation period and whether the page timer should run
func (s *Scheduler) PageTimer(now time.Time) (time.Duration, bool) {
	active := MonitorOn(now) && s.state.Mode == domain.ModeBirthday && len(s.roster) > 0
	return PageInterval(len(s.roster)), active
}

// Snapshot captures the state and its derived predicates at now
func (s *Scheduler) Snapshot(now time.Time) domain.Snapshot {
	snap := domain.Snapshot{
		At:             now,
		Loaded:         s.loaded,
		MonitorOn:      MonitorOn(now),
		BirthdayWindow: BirthdayWindow(now),
		PeakHours:      PeakHours(now),
		State:          s.state,
		PersonCount:    len(s.roster),
		VideoCount:     len(s.videos),
	}

	if s.state.Mode == domain.ModeBirthday && len(s.roster) > 0 {
		start := s.state.PageStartIndex
		end := min(start+PageSize, len(s.roster))
		snap.Visible = append([]domain.Person(nil), s.roster[start:end]...)
	}

	return snap
}

func (s *Scheduler) enterBirthday(now time.Time, reason string) {
	s.state.Mode = domain.ModeBirthday
	s.state.PageStartIndex = 0
	s.state.BirthdayWindowEnteredAt = now

	s.logger.Info("Switching to birthday mode",
		zap.String("reason", reason),
		zap.Int("people", len(s.roster)),
		zap.Duration("pageInterval", PageInterval(len(s.roster))))
}

func (s *Scheduler) enterVideo(reason string) {
	s.state.Mode = domain.ModeVideo

	s.logger.Info("Switching to video mode",
		zap.String("reason", reason),
		zap.Int("videos", len(s.videos)),
		zap.Int("videoIndex", s.state.CurrentVideoIndex))
}
