// Package typing estimates a rough mood from how fast a message was typed.
package typing

import (
	"time"
	"unicode/utf8"
)

// Mood is the affect guessed from typing speed.
type Mood string

const (
	MoodNormal   Mood = "normal"
	MoodStressed Mood = "stressed"
	MoodBored    Mood = "bored"
)

const (
	slowCharsPerSecond = 2.0
	fastCharsPerSecond = 8.0
)

// Analyzer measures characters per second between RecordStart and Analyze.
// The zero value is idle and uses the wall clock.
type Analyzer struct {
	start time.Time
	now   func() time.Time
}

// NewAnalyzer returns an idle analyzer reading time from now.
func NewAnalyzer(now func() time.Time) *Analyzer {
	return &Analyzer{now: now}
}

// Resume restores an analyzer whose start was recorded earlier, e.g. in a session.
func Resume(start time.Time, now func() time.Time) *Analyzer {
	return &Analyzer{start: start, now: now}
}

func (a *Analyzer) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

// RecordStart moves the analyzer into the timing state.
func (a *Analyzer) RecordStart() time.Time {
	a.start = a.clock()
	return a.start
}

// Started reports whether a start timestamp has been recorded.
func (a *Analyzer) Started() bool {
	return !a.start.IsZero()
}

// Analyze classifies the typing pace of message.
func (a *Analyzer) Analyze(message string) Mood {
	if !a.Started() {
		return MoodNormal
	}

	elapsed := a.clock().Sub(a.start).Seconds()
	if elapsed <= 0 {
		return MoodNormal
	}

	cps := float64(utf8.RuneCountInString(message)) / elapsed
	switch {
	case cps < slowCharsPerSecond:
		return MoodStressed
	case cps > fastCharsPerSecond:
		return MoodBored
	default:
		return MoodNormal
	}
}
