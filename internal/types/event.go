// Package types holds value types shared across the simulation models.
package types

import "time"

// Event represents a game event presented to the player
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"` // education, life, career
	Options     []EventOption `json:"options"`
}

// EventOption represents a choice in an event
type EventOption struct {
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Effects     []Effect `json:"effects"`
}

// Option returns the option at index, if any
func (e *Event) Option(index int) (EventOption, bool) {
	if e == nil || index < 0 || index >= len(e.Options) {
		return EventOption{}, false
	}
	return e.Options[index], true
}

// Outcome represents the resolved result of an event choice
type Outcome struct {
	Type        OutcomeType `json:"type"`
	Description string      `json:"description"`
	Effects     []Effect    `json:"effects"`
}

// Decision represents a choice made by a player
type Decision struct {
	ID          string      `json:"id"`
	EventID     string      `json:"event_id"`
	Choice      int         `json:"choice"`
	Timestamp   time.Time   `json:"timestamp"`
	OutcomeType OutcomeType `json:"outcome_type"`
	Outcome     string      `json:"outcome"`
}
