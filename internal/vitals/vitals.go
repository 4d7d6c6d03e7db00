// Package vitals keeps the game clock, the player's energy, stress,
// satisfaction and health meters, the life-event queue and the cumulative
// play statistics.
package vitals

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/user/career-path/internal/types"
)

var (
	ErrNoActiveEvent = errors.New("no active event")
	ErrInvalidChoice = errors.New("invalid event choice")
)

// Meter bounds and passive recovery per day
const (
	MinMeter = 0
	MaxMeter = 100

	EnergyPerDay = 5
	StressPerDay = 2
)

// DefaultStartDate is the first day of a new game
var DefaultStartDate = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

// StatKey names a counter in Stats
type StatKey string

const (
	StatJobsApplied        StatKey = "jobsApplied"
	StatJobsAccepted       StatKey = "jobsAccepted"
	StatProjectsCompleted  StatKey = "projectsCompleted"
	StatSkillsLearned      StatKey = "skillsLearned"
	StatEventsExperienced  StatKey = "eventsExperienced"
	StatDecisionsCorrect   StatKey = "decisionsCorrect"
	StatDecisionsIncorrect StatKey = "decisionsIncorrect"
)

// Stats are cumulative over the whole game
type Stats struct {
	DaysPlayed         int     `json:"daysPlayed"`
	TotalSalaryEarned  float64 `json:"totalSalaryEarned"`
	JobsApplied        int     `json:"jobsApplied"`
	JobsAccepted       int     `json:"jobsAccepted"`
	ProjectsCompleted  int     `json:"projectsCompleted"`
	SkillsLearned      int     `json:"skillsLearned"`
	EventsExperienced  int     `json:"eventsExperienced"`
	DecisionsCorrect   int     `json:"decisionsCorrect"`
	DecisionsIncorrect int     `json:"decisionsIncorrect"`
}

func (s *Stats) counter(key StatKey) *int {
	switch key {
	case StatJobsApplied:
		return &s.JobsApplied
	case StatJobsAccepted:
		return &s.JobsAccepted
	case StatProjectsCompleted:
		return &s.ProjectsCompleted
	case StatSkillsLearned:
		return &s.SkillsLearned
	case StatEventsExperienced:
		return &s.EventsExperienced
	case StatDecisionsCorrect:
		return &s.DecisionsCorrect
	case StatDecisionsIncorrect:
		return &s.DecisionsIncorrect
	}
	return nil
}

// QueuedEvent waits in the queue until its trigger date
type QueuedEvent struct {
	Event       types.Event `json:"event"`
	TriggerDate time.Time   `json:"triggerDate"`
}

// EventRecord is an archived, resolved event
type EventRecord struct {
	Event    types.Event    `json:"event"`
	Decision types.Decision `json:"decision"`
	Outcome  types.Outcome  `json:"outcome"`
}

// State is the persisted vitals document
type State struct {
	CurrentDate  time.Time     `json:"currentDate"`
	Energy       int           `json:"energy"`
	Stress       int           `json:"stress"`
	Satisfaction int           `json:"satisfaction"`
	Health       int           `json:"health"`
	Stats        Stats         `json:"stats"`
	CurrentEvent *types.Event  `json:"currentEvent"`
	EventQueue   []QueuedEvent `json:"eventQueue"`
	EventHistory []EventRecord `json:"eventHistory"`
}

// Model owns the vitals state. It also serves as the game clock.
type Model struct {
	state State
	start time.Time
}

// NewModel creates a vitals model whose clock starts at start
func NewModel(start time.Time) *Model {
	if start.IsZero() {
		start = DefaultStartDate
	}
	m := &Model{start: start}
	m.Reset()
	return m
}

// Reset restores the default state
func (m *Model) Reset() {
	m.state = State{
		CurrentDate:  m.start,
		Energy:       100,
		Stress:       10,
		Satisfaction: 70,
		Health:       100,
	}
	m.fillDefaults()
}

func (m *Model) fillDefaults() {
	if m.state.CurrentDate.IsZero() {
		m.state.CurrentDate = m.start
	}
	if m.state.EventQueue == nil {
		m.state.EventQueue = []QueuedEvent{}
	}
	if m.state.EventHistory == nil {
		m.state.EventHistory = []EventRecord{}
	}
	m.state.Energy = clamp(m.state.Energy)
	m.state.Stress = clamp(m.state.Stress)
	m.state.Satisfaction = clamp(m.state.Satisfaction)
	m.state.Health = clamp(m.state.Health)
}

// Now returns the current game date
func (m *Model) Now() time.Time { return m.state.CurrentDate }

// State returns a copy of the current state
func (m *Model) State() State {
	s := m.state
	s.EventQueue = append([]QueuedEvent{}, m.state.EventQueue...)
	s.EventHistory = append([]EventRecord{}, m.state.EventHistory...)
	if m.state.CurrentEvent != nil {
		ev := *m.state.CurrentEvent
		s.CurrentEvent = &ev
	}
	return s
}

// Stats returns the cumulative statistics
func (m *Model) Stats() Stats { return m.state.Stats }

// AdvanceTime moves the clock forward and applies passive recovery
func (m *Model) AdvanceTime(days int) {
	if days <= 0 {
		return
	}
	m.state.CurrentDate = m.state.CurrentDate.AddDate(0, 0, days)
	m.ModifyEnergy(days * EnergyPerDay)
	m.ModifyStress(-days * StressPerDay)
	m.state.Stats.DaysPlayed += days
}

// ModifyEnergy adds delta and returns the clamped result
func (m *Model) ModifyEnergy(delta int) int {
	m.state.Energy = clamp(m.state.Energy + delta)
	return m.state.Energy
}

// ModifyStress adds delta and returns the clamped result
func (m *Model) ModifyStress(delta int) int {
	m.state.Stress = clamp(m.state.Stress + delta)
	return m.state.Stress
}

// ModifySatisfaction adds delta and returns the clamped result
func (m *Model) ModifySatisfaction(delta int) int {
	m.state.Satisfaction = clamp(m.state.Satisfaction + delta)
	return m.state.Satisfaction
}

// ModifyHealth adds delta and returns the clamped result
func (m *Model) ModifyHealth(delta int) int {
	m.state.Health = clamp(m.state.Health + delta)
	return m.state.Health
}

// ApplyScalar implements types.EffectTarget for the four meters
func (m *Model) ApplyScalar(field string, delta float64) bool {
	d := int(math.Round(delta))
	switch field {
	case types.FieldEnergy:
		m.ModifyEnergy(d)
	case types.FieldStress:
		m.ModifyStress(d)
	case types.FieldSatisfaction:
		m.ModifySatisfaction(d)
	case types.FieldHealth:
		m.ModifyHealth(d)
	default:
		return false
	}
	return true
}

// ApplyNested implements types.EffectTarget; vitals own no keyed categories.
func (m *Model) ApplyNested(string, string, float64) bool {
	return false
}

// IncrementStat adds n to a counter. It reports false for unknown keys.
func (m *Model) IncrementStat(key StatKey, n int) bool {
	c := m.state.Stats.counter(key)
	if c == nil {
		return false
	}
	*c += n
	return true
}

// RecordSalary adds a paid amount to the lifetime earnings
func (m *Model) RecordSalary(amount float64) {
	if amount > 0 {
		m.state.Stats.TotalSalaryEarned += amount
	}
}

// QueueEvent schedules an event to become current on or after triggerDate
func (m *Model) QueueEvent(event types.Event, triggerDate time.Time) {
	m.state.EventQueue = append(m.state.EventQueue, QueuedEvent{Event: event, TriggerDate: triggerDate})
}

// ProcessEventQueue makes the first due event current. Nothing happens while
// another event is active.
func (m *Model) ProcessEventQueue() (*types.Event, bool) {
	if m.state.CurrentEvent != nil {
		return nil, false
	}
	for i, q := range m.state.EventQueue {
		if q.TriggerDate.After(m.state.CurrentDate) {
			continue
		}
		ev := q.Event
		m.state.CurrentEvent = &ev
		m.state.EventQueue = append(m.state.EventQueue[:i:i], m.state.EventQueue[i+1:]...)
		out := ev
		return &out, true
	}
	return nil, false
}

// CurrentEvent returns the active event, if any
func (m *Model) CurrentEvent() *types.Event {
	if m.state.CurrentEvent == nil {
		return nil
	}
	ev := *m.state.CurrentEvent
	return &ev
}

// CompleteEvent archives the active event with the chosen outcome and
// clears it. Positive outcomes count as correct decisions, negative ones as
// incorrect; neutral ones count as neither.
func (m *Model) CompleteEvent(choiceIndex int, outcome types.Outcome) (types.Decision, error) {
	ev := m.state.CurrentEvent
	if ev == nil {
		return types.Decision{}, ErrNoActiveEvent
	}
	if _, ok := ev.Option(choiceIndex); !ok {
		return types.Decision{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choiceIndex)
	}

	decision := types.Decision{
		ID:          uuid.New().String(),
		EventID:     ev.ID,
		Choice:      choiceIndex,
		Timestamp:   m.state.CurrentDate,
		OutcomeType: outcome.Type,
		Outcome:     outcome.Description,
	}

	m.state.Stats.EventsExperienced++
	switch outcome.Type {
	case types.OutcomePositive:
		m.state.Stats.DecisionsCorrect++
	case types.OutcomeNegative:
		m.state.Stats.DecisionsIncorrect++
	}

	m.state.EventHistory = append(m.state.EventHistory, EventRecord{
		Event:    *ev,
		Decision: decision,
		Outcome:  outcome,
	})
	m.state.CurrentEvent = nil
	return decision, nil
}

// Serialize returns the persisted document
func (m *Model) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(m.state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vitals: %w", err)
	}
	return data, nil
}

// Restore replaces the state from a document. Missing meters take their
// defaults and out-of-range meters are clamped.
func (m *Model) Restore(doc json.RawMessage) error {
	m.Reset()
	if len(doc) == 0 {
		return nil
	}
	state := m.state
	if err := json.Unmarshal(doc, &state); err != nil {
		return fmt.Errorf("failed to parse vitals: %w", err)
	}
	m.state = state
	m.fillDefaults()
	return nil
}

func clamp(v int) int {
	if v < MinMeter {
		return MinMeter
	}
	if v > MaxMeter {
		return MaxMeter
	}
	return v
}
