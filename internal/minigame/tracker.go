package minigame

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is how a played game ended
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAbandoned Outcome = "abandoned"
)

// Record is one entry in the shared history
type Record struct {
	SessionID  string        `json:"sessionId"`
	Kind       Kind          `json:"kind"`
	Difficulty Difficulty    `json:"difficulty"`
	Outcome    Outcome       `json:"outcome"`
	Score      int           `json:"score"`
	Duration   time.Duration `json:"duration"`
	PlayedAt   time.Time     `json:"playedAt"`
	HighScore  bool          `json:"highScore"`
}

// TrackerState is the persisted minigame document
type TrackerState struct {
	History    []Record     `json:"history"`
	HighScores map[Kind]int `json:"highScores"`
}

// Tracker keeps the history of every kind and the best score per kind
type Tracker struct {
	state TrackerState
}

// NewTracker returns an empty tracker
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Reset clears history and high scores
func (t *Tracker) Reset() {
	t.state = TrackerState{}
	t.fillDefaults()
}

func (t *Tracker) fillDefaults() {
	if t.state.History == nil {
		t.state.History = []Record{}
	}
	if t.state.HighScores == nil {
		t.state.HighScores = make(map[Kind]int, len(Kinds))
	}
}

// Complete records a finished game and raises the high score if beaten
func (t *Tracker) Complete(s Session, score int, duration time.Duration, at time.Time) Record {
	rec := Record{
		SessionID:  s.ID,
		Kind:       s.Kind,
		Difficulty: s.Difficulty,
		Outcome:    OutcomeCompleted,
		Score:      max(0, score),
		Duration:   duration,
		PlayedAt:   at,
	}
	if best, ok := t.state.HighScores[s.Kind]; !ok || rec.Score > best {
		t.state.HighScores[s.Kind] = rec.Score
		rec.HighScore = true
	}
	t.state.History = append(t.state.History, rec)
	return rec
}

// Abandon records a game the player walked away from. It scores 0 and never
// touches the high scores.
func (t *Tracker) Abandon(s Session, duration time.Duration, at time.Time) Record {
	rec := Record{
		SessionID:  s.ID,
		Kind:       s.Kind,
		Difficulty: s.Difficulty,
		Outcome:    OutcomeAbandoned,
		Duration:   duration,
		PlayedAt:   at,
	}
	t.state.History = append(t.state.History, rec)
	return rec
}

// HighScore returns the best completed score for kind
func (t *Tracker) HighScore(kind Kind) int {
	return t.state.HighScores[kind]
}

// State returns a copy of the tracker state
func (t *Tracker) State() TrackerState {
	s := TrackerState{
		History:    append([]Record{}, t.state.History...),
		HighScores: make(map[Kind]int, len(t.state.HighScores)),
	}
	for k, v := range t.state.HighScores {
		s.HighScores[k] = v
	}
	return s
}

// Serialize returns the persisted document
func (t *Tracker) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(t.state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal minigames: %w", err)
	}
	return data, nil
}

// Restore replaces the state from a document
func (t *Tracker) Restore(doc json.RawMessage) error {
	var state TrackerState
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &state); err != nil {
			return fmt.Errorf("failed to parse minigames: %w", err)
		}
	}
	t.state = state
	t.fillDefaults()
	return nil
}
