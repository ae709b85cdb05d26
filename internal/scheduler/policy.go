package scheduler

import (
	"math"
	"time"
)

// PageSize is the number of names shown at once
const PageSize = 6

// Fixed display policy
const (
	monitorStartHour  = 8
	monitorEndHour    = 20
	birthdayStartHour = 8
	birthdayEndHour   = 10

	peakStartMinute = 8*60 + 30
	peakEndMinute   = 9*60 + 30 // inclusive

	secondsPerPerson = 2.5
	minBaseShowSecs  = 10.0
	minPageInterval  = 5 * time.Second
)

// MonitorOn reports whether the panel shows anything at t
func MonitorOn(t time.Time) bool {
	return withinHours(t, monitorStartHour, monitorEndHour)
}

// BirthdayWindow reports whether birthday mode may be entered at t
func BirthdayWindow(t time.Time) bool {
	return withinHours(t, birthdayStartHour, birthdayEndHour)
}

// PeakHours reports whether t falls in the doubled-dwell window
func PeakHours(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= peakStartMinute && m <= peakEndMinute
}

// TotalPages returns how many pages n people take
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// BaseShowTime is the time one full pass over n people should take
func BaseShowTime(n int) time.Duration {
	secs := math.Max(minBaseShowSecs, float64(n)*secondsPerPerson)
	return time.Duration(secs * float64(time.Second))
}

// PageInterval is the rotation period for a roster of n people
func PageInterval(n int) time.Duration {
	pages := TotalPages(n)
	if pages == 0 {
		return minPageInterval
	}
	interval := BaseShowTime(n) / time.Duration(pages)
	if interval < minPageInterval {
		return minPageInterval
	}
	return interval
}

// MinShowTime is the minimum birthday dwell before handing over to video
func MinShowTime(n int, t time.Time) time.Duration {
	if PeakHours(t) {
		return 2 * BaseShowTime(n)
	}
	return BaseShowTime(n)
}

func withinHours(t time.Time, start, end int) bool {
	h := t.Hour()
	return h >= start && h < end
}
