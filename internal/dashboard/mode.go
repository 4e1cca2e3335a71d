// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package dashboard

import (
	"fmt"

	"github.com/davetashner/filmdash/internal/pipeline"
)

// Mode selects which selector is active. Exactly one value is held at a time,
// so "clear both selections on switch" is enforced in one place.
type Mode string

// Modes. ModeNone is the neutral startup state.
const (
	ModeNone  Mode = ""
	ModeMovie Mode = "movie"
	ModeGenre Mode = "genre"
)

// ParseMode converts a wire value to a Mode. "none" and "" both map to
// ModeNone.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none":
		return ModeNone, nil
	case string(ModeMovie):
		return ModeMovie, nil
	case string(ModeGenre):
		return ModeGenre, nil
	default:
		return ModeNone, fmt.Errorf("unknown mode %q (must be movie, genre, or none)", s)
	}
}

// String returns the wire value; ModeNone prints as "none".
func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	return string(m)
}

// Visibility reports which selectors the UI shows.
type Visibility struct {
	Movie bool `json:"movie"`
	Genre bool `json:"genre"`
}

// Visibility returns the selector visibility for m.
func (m Mode) Visibility() Visibility {
	return Visibility{Movie: m == ModeMovie, Genre: m == ModeGenre}
}

// State is a session's selection together with its mode.
type State struct {
	Mode      Mode               `json:"mode"`
	Selection pipeline.Selection `json:"selection"`
}

// Toggle switches to m. Movie and genre selections are cleared on every
// transition regardless of their previous values; the year range survives.
func (s State) Toggle(m Mode) State {
	return State{
		Mode:      m,
		Selection: pipeline.Selection{Years: s.Selection.Years},
	}
}
