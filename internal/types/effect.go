package types

// EffectKind tags the shape of an Effect
type EffectKind string

const (
	// EffectScalar changes a top-level numeric field such as energy or stress
	EffectScalar EffectKind = "scalar"
	// EffectNested changes one key inside a keyed category such as skills
	EffectNested EffectKind = "nested"
)

// Well-known effect fields and categories
const (
	FieldEnergy          = "energy"
	FieldStress          = "stress"
	FieldSatisfaction    = "satisfaction"
	FieldHealth          = "health"
	FieldReputation      = "reputation"
	FieldSalary          = "salary"
	FieldJobSatisfaction = "jobSatisfaction"

	CategorySkills      = "skills"
	CategoryAttributes  = "attributes"
	CategoryConnections = "connections"
	CategoryEducation   = "education"
)

// Effect is one change an event option applies to game state
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Field    string     `json:"field,omitempty"`
	Category string     `json:"category,omitempty"`
	Key      string     `json:"key,omitempty"`
	Delta    float64    `json:"delta"`
}

// Scalar builds a top-level effect
func Scalar(field string, delta float64) Effect {
	return Effect{Kind: EffectScalar, Field: field, Delta: delta}
}

// Nested builds an effect on one key of a category
func Nested(category, key string, delta float64) Effect {
	return Effect{Kind: EffectNested, Category: category, Key: key, Delta: delta}
}

// Name returns the field name used when judging the effect's direction.
func (e Effect) Name() string {
	if e.Kind == EffectNested {
		return e.Key
	}
	return e.Field
}

// EffectTarget is implemented by every model that owns effectable state.
// Each method reports whether the target recognised and applied the effect.
type EffectTarget interface {
	ApplyScalar(field string, delta float64) bool
	ApplyNested(category, key string, delta float64) bool
}

// ApplyEffects offers each effect to the targets in order; the first target
// that accepts it wins. Effects no target accepted are returned.
func ApplyEffects(effects []Effect, targets ...EffectTarget) []Effect {
	var rest []Effect
	for _, effect := range effects {
		applied := false
		for _, target := range targets {
			if target == nil {
				continue
			}
			switch effect.Kind {
			case EffectScalar:
				applied = target.ApplyScalar(effect.Field, effect.Delta)
			case EffectNested:
				applied = target.ApplyNested(effect.Category, effect.Key, effect.Delta)
			}
			if applied {
				break
			}
		}
		if !applied {
			rest = append(rest, effect)
		}
	}
	return rest
}

// OutcomeType is the coarse verdict on a set of effects
type OutcomeType string

const (
	OutcomePositive OutcomeType = "positive"
	OutcomeNegative OutcomeType = "negative"
	OutcomeNeutral  OutcomeType = "neutral"
)

// ClassifyEffects tallies favorable against unfavorable changes. Stress going
// down is favorable; every other field, reputation included, is favorable
// going up. Majority wins and a tie is neutral.
func ClassifyEffects(effects []Effect) OutcomeType {
	favorable, unfavorable := 0, 0
	for _, effect := range effects {
		if effect.Delta == 0 {
			continue
		}
		good := effect.Delta > 0
		if effect.Name() == FieldStress {
			good = effect.Delta < 0
		}
		if good {
			favorable++
		} else {
			unfavorable++
		}
	}

	switch {
	case favorable > unfavorable:
		return OutcomePositive
	case unfavorable > favorable:
		return OutcomeNegative
	default:
		return OutcomeNeutral
	}
}
