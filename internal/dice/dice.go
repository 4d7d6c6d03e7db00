// Package dice holds the single random source every probabilistic outcome in
// the simulation draws from.
package dice

import (
	"math/rand"
	"time"
)

// DiceRoller handles dice rolling for the game
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller creates a new dice roller with a time-seeded random number generator
func NewDiceRoller() *DiceRoller {
	return NewSeededDiceRoller(time.Now().UnixNano())
}

// NewSeededDiceRoller creates a dice roller whose sequence is reproducible
func NewSeededDiceRoller(seed int64) *DiceRoller {
	return &DiceRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll rolls a dice with the specified number of sides
func (dr *DiceRoller) Roll(sides int) int {
	return dr.rng.Intn(sides) + 1
}

// RollWithBonus rolls a dice and adds a bonus value
func (dr *DiceRoller) RollWithBonus(sides, bonus int) int {
	return dr.Roll(sides) + bonus
}

// Intn returns a value in [0, n)
func (dr *DiceRoller) Intn(n int) int {
	return dr.rng.Intn(n)
}

// Float returns a value in [0, 1)
func (dr *DiceRoller) Float() float64 {
	return dr.rng.Float64()
}

// Chance reports whether a roll against probability p succeeds.
func (dr *DiceRoller) Chance(p float64) bool {
	return dr.rng.Float64() < p
}

// Between returns a float in [min, max)
func (dr *DiceRoller) Between(min, max float64) float64 {
	return min + dr.rng.Float64()*(max-min)
}

// Shuffle permutes n elements using swap
func (dr *DiceRoller) Shuffle(n int, swap func(i, j int)) {
	dr.rng.Shuffle(n, swap)
}

// Pick returns a random index for a slice of length n, or -1 when n is zero.
func (dr *DiceRoller) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return dr.rng.Intn(n)
}
