package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user/career-path/internal/types"
	"github.com/user/career-path/internal/vitals"
)

const (
	sourceLife      = "life"
	sourceEducation = "education"
)

func eventView(source string, event *types.Event) *EventView {
	if event == nil {
		return nil
	}
	view := &EventView{
		Source:      source,
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Options:     make([]string, 0, len(event.Options)),
	}
	for _, opt := range event.Options {
		view.Options = append(view.Options, opt.Text)
	}
	return view
}

// CurrentEvent returns the event waiting for a decision. A life event takes
// precedence over a semester event.
func (gm *GameManager) CurrentEvent() *EventView {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()

	if ev := gm.vitals.CurrentEvent(); ev != nil {
		return eventView(sourceLife, ev)
	}
	return eventView(sourceEducation, gm.education.ActiveEvent())
}

// CompleteEvent resolves the current life event with the chosen option. The
// option's effects go to whichever model owns each field.
func (gm *GameManager) CompleteEvent(choice int) (types.Outcome, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	event := gm.vitals.CurrentEvent()
	if event == nil {
		return types.Outcome{}, ErrNoEvent
	}
	option, ok := event.Option(choice)
	if !ok {
		return types.Outcome{}, fmt.Errorf("%w: %d", ErrInvalidOption, choice)
	}

	outcome := types.Outcome{
		Type:        types.ClassifyEffects(option.Effects),
		Description: describe(option),
		Effects:     option.Effects,
	}
	gm.applyEffects(event.ID, option.Effects)

	if _, err := gm.vitals.CompleteEvent(choice, outcome); err != nil {
		return types.Outcome{}, err
	}
	gm.vitals.ProcessEventQueue()
	gm.resync()

	gm.Logger.Info("Life event resolved",
		zap.String("game_id", gm.id),
		zap.String("event_id", event.ID),
		zap.Int("choice", choice),
		zap.String("outcome", string(outcome.Type)))
	return outcome, nil
}

// HandleEducationEvent resolves the pending semester event. Effects the
// education model does not own are passed on to the other models.
func (gm *GameManager) HandleEducationEvent(choice int) (types.Outcome, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	event := gm.education.ActiveEvent()
	if event == nil {
		return types.Outcome{}, ErrNoEvent
	}
	eventID := event.ID

	option, rest, ok := gm.education.HandleEvent(choice)
	if !ok {
		return types.Outcome{}, fmt.Errorf("%w: %d", ErrInvalidOption, choice)
	}
	gm.applyEffects(eventID, rest)

	outcome := types.Outcome{
		Type:        types.ClassifyEffects(option.Effects),
		Description: describe(option),
		Effects:     option.Effects,
	}
	gm.vitals.IncrementStat(vitals.StatEventsExperienced, 1)
	switch outcome.Type {
	case types.OutcomePositive:
		gm.vitals.IncrementStat(vitals.StatDecisionsCorrect, 1)
	case types.OutcomeNegative:
		gm.vitals.IncrementStat(vitals.StatDecisionsIncorrect, 1)
	}
	gm.resync()

	gm.Logger.Info("Semester event resolved",
		zap.String("game_id", gm.id),
		zap.String("event_id", eventID),
		zap.Int("choice", choice),
		zap.String("outcome", string(outcome.Type)))
	return outcome, nil
}

// applyEffects routes effects to the models in a fixed order and logs any
// that no model recognised.
func (gm *GameManager) applyEffects(eventID string, effects []types.Effect) {
	unhandled := types.ApplyEffects(effects, gm.vitals, gm.character, gm.career, gm.education)
	for _, effect := range unhandled {
		gm.Logger.Warn("Unhandled event effect",
			zap.String("event_id", eventID),
			zap.String("kind", string(effect.Kind)),
			zap.String("name", effect.Name()),
			zap.Float64("delta", effect.Delta))
	}
}

func describe(option types.EventOption) string {
	if option.Description != "" {
		return option.Description
	}
	return option.Text
}
