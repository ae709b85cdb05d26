package domain

import "time"

// DisplayMode is what the panel is currently dedicated to
type DisplayMode string

const (
	// ModeBirthday shows pages of people celebrating today
	ModeBirthday DisplayMode = "birthday"
	// ModeVideo plays the marketing clip rotation
	ModeVideo DisplayMode = "video"
)

// Slot identifies one of the two video buffers
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

// Other returns the opposite buffer
func (s Slot) Other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

// NoVideo marks a slot that has nothing loaded
const NoVideo = -1

// Person is a roster entry shown on the birthday pages
type Person struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// VideoItem is one clip of the rotation.
// Priority is stored for the admin surface; rotation uses list order.
type VideoItem struct {
	URL      string `json:"url"`
	Priority int    `json:"priority"`
}

// DisplayState is the scheduler's single mutable record
type DisplayState struct {
	Mode                    DisplayMode `json:"mode"`
	PageStartIndex          int         `json:"pageStartIndex"`
	CurrentVideoIndex       int         `json:"currentVideoIndex"`
	ActiveSlot              Slot        `json:"activeSlot"`
	BirthdayWindowEnteredAt time.Time   `json:"birthdayWindowEnteredAt"`
}

// Snapshot is a read-only copy of the scheduler output at a given instant
type Snapshot struct {
	At             time.Time    `json:"at"`
	Loaded         bool         `json:"loaded"`
	MonitorOn      bool         `json:"monitorOn"`
	BirthdayWindow bool         `json:"birthdayWindow"`
	PeakHours      bool         `json:"peakHours"`
	State          DisplayState `json:"state"`
	Visible        []Person     `json:"visible"`
	PersonCount    int          `json:"personCount"`
	VideoCount     int          `json:"videoCount"`
}

// SlotState describes what a video buffer currently holds
type SlotState struct {
	LoadedIndex int    `json:"loadedIndex"`
	URL         string `json:"url"`
	Playing     bool   `json:"playing"`
}

// PlaybackEventKind classifies backend notifications
type PlaybackEventKind string

const (
	// PlaybackStarted is informational only
	PlaybackStarted PlaybackEventKind = "started"
	// PlaybackEnded reports a clip that played to the end
	PlaybackEnded PlaybackEventKind = "ended"
	// PlaybackErrored reports a load or playback failure
	PlaybackErrored PlaybackEventKind = "errored"
)

// PlaybackEvent is raised by a slot backend for a given slot and video index
type PlaybackEvent struct {
	Slot  Slot
	Index int
	Kind  PlaybackEventKind
	Err   error
}

// BirthdaySummary is the short form used by the week overview
type BirthdaySummary struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// DayBirthdays groups the people celebrating on one calendar day
type DayBirthdays struct {
	Date    string            `json:"date"`
	DayName string            `json:"dayName"`
	Count   int               `json:"count"`
	People  []BirthdaySummary `json:"people"`
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}
