package character

import (
	"errors"
	"fmt"
)

var (
	ErrAttributeBudget  = errors.New("attribute points outside budget")
	ErrSkillBudget      = errors.New("skill points over budget")
	ErrConnectionBudget = errors.New("connection points over budget")
	ErrMissingName      = errors.New("character has no name")
)

// Budget bounds the points a player may distribute during creation
type Budget struct {
	MinAttributePoints int
	MaxAttributePoints int
	SkillPoints        int
	ConnectionPoints   int
}

// DefaultBudget is the standard creation budget
var DefaultBudget = Budget{
	MinAttributePoints: 25,
	MaxAttributePoints: 30,
	SkillPoints:        20,
	ConnectionPoints:   10,
}

// ValidateBudget reports whether the character may be finalized. The setters
// never enforce totals, so this is the gate creation callers must pass.
func (c *Character) ValidateBudget(b Budget) error {
	if c.Name == "" {
		return ErrMissingName
	}
	if total := c.TotalAttributePoints(); total < b.MinAttributePoints || total > b.MaxAttributePoints {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrAttributeBudget, total, b.MinAttributePoints, b.MaxAttributePoints)
	}
	if total := c.TotalSkillPoints(); total > b.SkillPoints {
		return fmt.Errorf("%w: %d > %d", ErrSkillBudget, total, b.SkillPoints)
	}
	if total := c.TotalConnectionPoints(); total > b.ConnectionPoints {
		return fmt.Errorf("%w: %d > %d", ErrConnectionBudget, total, b.ConnectionPoints)
	}
	return nil
}
