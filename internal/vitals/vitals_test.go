package vitals

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/career-path/internal/types"
)

func testEvent(id string) types.Event {
	return types.Event{
		ID:    id,
		Title: "Event " + id,
		Options: []types.EventOption{
			{Text: "accept", Effects: []types.Effect{types.Scalar(types.FieldEnergy, 10)}},
			{Text: "decline"},
		},
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(time.Time{})
	assert.Equal(t, DefaultStartDate, m.Now())
	state := m.State()
	assert.Equal(t, 100, state.Energy)
	assert.Equal(t, 10, state.Stress)
	assert.Nil(t, state.CurrentEvent)
	assert.NotNil(t, state.EventQueue)
}

func TestAdvanceTime(t *testing.T) {
	m := NewModel(DefaultStartDate)
	m.ModifyEnergy(-50)
	m.ModifyStress(40)

	m.AdvanceTime(3)
	state := m.State()
	assert.Equal(t, DefaultStartDate.AddDate(0, 0, 3), state.CurrentDate)
	assert.Equal(t, 65, state.Energy)
	assert.Equal(t, 44, state.Stress)
	assert.Equal(t, 3, state.Stats.DaysPlayed)

	m.AdvanceTime(60)
	state = m.State()
	assert.Equal(t, 100, state.Energy)
	assert.Equal(t, 0, state.Stress)
	assert.Equal(t, 63, state.Stats.DaysPlayed)

	m.AdvanceTime(0)
	m.AdvanceTime(-4)
	assert.Equal(t, 63, m.Stats().DaysPlayed)
}

func TestMetersAlwaysClamped(t *testing.T) {
	m := NewModel(DefaultStartDate)
	modifiers := []func(int) int{m.ModifyEnergy, m.ModifyStress, m.ModifySatisfaction, m.ModifyHealth}
	deltas := []int{-1000, 1000, -1, 1, 0, 55, -101, 250, -37}

	for _, modify := range modifiers {
		for _, d := range deltas {
			v := modify(d)
			assert.GreaterOrEqual(t, v, MinMeter)
			assert.LessOrEqual(t, v, MaxMeter)
		}
	}
}

func TestApplyEffectsToVitals(t *testing.T) {
	m := NewModel(DefaultStartDate)
	rest := types.ApplyEffects([]types.Effect{
		types.Scalar(types.FieldEnergy, -30),
		types.Scalar(types.FieldStress, 15),
		types.Scalar(types.FieldHealth, -5),
		types.Scalar(types.FieldReputation, 1),
		types.Nested(types.CategorySkills, "english", 1),
	}, m)

	state := m.State()
	assert.Equal(t, 70, state.Energy)
	assert.Equal(t, 25, state.Stress)
	assert.Equal(t, 95, state.Health)
	assert.Len(t, rest, 2)
}

func TestScalarEffectsRound(t *testing.T) {
	m := NewModel(DefaultStartDate)
	require.True(t, m.ApplyScalar(types.FieldEnergy, -0.9))
	require.True(t, m.ApplyScalar(types.FieldStress, 0.5))
	require.True(t, m.ApplyScalar(types.FieldSatisfaction, 2.4))

	state := m.State()
	assert.Equal(t, 99, state.Energy)
	assert.Equal(t, 11, state.Stress)
	assert.Equal(t, 72, state.Satisfaction)
}

func TestEventQueue(t *testing.T) {
	m := NewModel(DefaultStartDate)
	m.QueueEvent(testEvent("later"), DefaultStartDate.AddDate(0, 0, 5))
	m.QueueEvent(testEvent("now"), DefaultStartDate)
	m.QueueEvent(testEvent("also-now"), DefaultStartDate)

	ev, ok := m.ProcessEventQueue()
	require.True(t, ok)
	assert.Equal(t, "now", ev.ID)

	// an active event blocks the queue
	_, ok = m.ProcessEventQueue()
	assert.False(t, ok)
	assert.Len(t, m.State().EventQueue, 2)

	_, err := m.CompleteEvent(1, types.Outcome{Type: types.OutcomeNeutral})
	require.NoError(t, err)

	ev, ok = m.ProcessEventQueue()
	require.True(t, ok)
	assert.Equal(t, "also-now", ev.ID)
	_, err = m.CompleteEvent(0, types.Outcome{Type: types.OutcomePositive})
	require.NoError(t, err)

	_, ok = m.ProcessEventQueue()
	assert.False(t, ok, "future event must wait for its trigger date")

	m.AdvanceTime(5)
	ev, ok = m.ProcessEventQueue()
	require.True(t, ok)
	assert.Equal(t, "later", ev.ID)
	assert.Empty(t, m.State().EventQueue)
}

func TestCompleteEvent(t *testing.T) {
	m := NewModel(DefaultStartDate)

	_, err := m.CompleteEvent(0, types.Outcome{})
	assert.True(t, errors.Is(err, ErrNoActiveEvent))

	m.QueueEvent(testEvent("a"), DefaultStartDate)
	_, ok := m.ProcessEventQueue()
	require.True(t, ok)

	_, err = m.CompleteEvent(5, types.Outcome{})
	assert.True(t, errors.Is(err, ErrInvalidChoice))
	assert.NotNil(t, m.CurrentEvent())

	decision, err := m.CompleteEvent(0, types.Outcome{Type: types.OutcomeNegative, Description: "overworked"})
	require.NoError(t, err)
	assert.Equal(t, "a", decision.EventID)
	assert.Equal(t, types.OutcomeNegative, decision.OutcomeType)
	assert.Nil(t, m.CurrentEvent())

	state := m.State()
	require.Len(t, state.EventHistory, 1)
	assert.Equal(t, "overworked", state.EventHistory[0].Outcome.Description)
	assert.Equal(t, 1, state.Stats.EventsExperienced)
	assert.Equal(t, 1, state.Stats.DecisionsIncorrect)
	assert.Equal(t, 0, state.Stats.DecisionsCorrect)
}

func TestStats(t *testing.T) {
	m := NewModel(DefaultStartDate)
	assert.True(t, m.IncrementStat(StatJobsApplied, 2))
	assert.True(t, m.IncrementStat(StatProjectsCompleted, 1))
	assert.False(t, m.IncrementStat("unknown", 1))

	m.RecordSalary(1500)
	m.RecordSalary(-20)

	stats := m.Stats()
	assert.Equal(t, 2, stats.JobsApplied)
	assert.Equal(t, 1, stats.ProjectsCompleted)
	assert.Equal(t, 1500.0, stats.TotalSalaryEarned)
}

func TestRestoreFillsAndClamps(t *testing.T) {
	m := NewModel(DefaultStartDate)
	require.NoError(t, m.Restore(json.RawMessage(`{"energy": 250, "stress": -4, "stats": {"jobsApplied": 3}}`)))

	state := m.State()
	assert.Equal(t, 100, state.Energy)
	assert.Equal(t, 0, state.Stress)
	assert.Equal(t, 70, state.Satisfaction)
	assert.Equal(t, 3, state.Stats.JobsApplied)
	assert.Equal(t, DefaultStartDate, state.CurrentDate)
	assert.NotNil(t, state.EventHistory)

	m.AdvanceTime(2)
	doc, err := m.Serialize()
	require.NoError(t, err)

	other := NewModel(DefaultStartDate)
	require.NoError(t, other.Restore(doc))
	assert.Equal(t, m.Now(), other.Now())

	assert.Error(t, other.Restore(json.RawMessage(`{`)))
}
