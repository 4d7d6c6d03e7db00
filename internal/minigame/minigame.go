// Package minigame generates the four minigame boards from the shared dice
// source and scores finished games. Results are kept by a Tracker.
package minigame

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/user/career-path/internal/dice"
)

var (
	ErrUnknownKind       = errors.New("unknown minigame")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrIncomplete        = errors.New("minigame not finished")
)

// Kind names a minigame
type Kind string

const (
	KindMemory     Kind = "memory"
	KindLogic      Kind = "logic"
	KindFocus      Kind = "focus"
	KindSequential Kind = "sequential"
)

// Kinds lists every minigame
var Kinds = []Kind{KindMemory, KindLogic, KindFocus, KindSequential}

// Difficulty scales board size
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var (
	memoryPairs     = map[Difficulty]int{Easy: 6, Medium: 8, Hard: 12}
	logicSequences  = map[Difficulty]int{Easy: 3, Medium: 5, Hard: 7}
	focusRounds     = map[Difficulty]int{Easy: 5, Medium: 8, Hard: 10}
	focusGridSize   = map[Difficulty]int{Easy: 3, Medium: 4, Hard: 5}
	sequentialTiles = map[Difficulty]int{Easy: 9, Medium: 16, Hard: 25}
)

const maxScore = 1000

// Session is a generated game waiting to be played. Exactly one board field
// is set, matching Kind.
type Session struct {
	ID         string           `json:"id"`
	Kind       Kind             `json:"kind"`
	Difficulty Difficulty       `json:"difficulty"`
	StartedAt  time.Time        `json:"startedAt"`
	Memory     *MemoryBoard     `json:"memory,omitempty"`
	Logic      []LogicPuzzle    `json:"logic,omitempty"`
	Focus      []FocusGrid      `json:"focus,omitempty"`
	Sequential *SequentialBoard `json:"sequential,omitempty"`
}

// Start generates a board for kind at difficulty
func Start(rng *dice.DiceRoller, kind Kind, difficulty Difficulty, now time.Time) (Session, error) {
	if _, ok := memoryPairs[difficulty]; !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}

	s := Session{ID: uuid.New().String(), Kind: kind, Difficulty: difficulty, StartedAt: now}
	switch kind {
	case KindMemory:
		board := GenerateMemory(rng, difficulty)
		s.Memory = &board
	case KindLogic:
		s.Logic = GenerateLogic(rng, difficulty)
	case KindFocus:
		s.Focus = GenerateFocus(rng, difficulty)
	case KindSequential:
		s.Sequential = GenerateSequential(rng, difficulty)
	default:
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s, nil
}

// Result is what the player reports when finishing a game. Moves counts
// memory card flips; Correct and Total count solved logic puzzles or focus
// rounds.
type Result struct {
	Moves    int
	Correct  int
	Total    int
	Duration time.Duration
}

// Normalize bounds a reported result by the board the session generated.
// Total is the number of puzzles on the board, Correct cannot exceed it and a
// memory game takes at least one move per pair.
func (s Session) Normalize(r Result) Result {
	switch s.Kind {
	case KindMemory:
		if s.Memory != nil {
			r.Moves = max(r.Moves, s.Memory.Pairs)
		}
	case KindLogic:
		r.Total = len(s.Logic)
	case KindFocus:
		r.Total = len(s.Focus)
	}
	if s.Kind == KindLogic || s.Kind == KindFocus {
		r.Correct = max(0, min(r.Correct, r.Total))
	}
	return r
}

// Score applies the scoring rule for kind
func Score(kind Kind, r Result) (int, error) {
	switch kind {
	case KindMemory:
		return MemoryScore(r.Moves, r.Duration), nil
	case KindLogic:
		return LogicScore(r.Correct, r.Total, r.Duration), nil
	case KindFocus:
		return FocusScore(r.Correct, r.Total, r.Duration), nil
	case KindSequential:
		return SequentialScore(r.Duration), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func seconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// MemoryScore is 1000 less 10 per move and 2 per second
func MemoryScore(moves int, d time.Duration) int {
	return max(0, maxScore-moves*10-seconds(d)*2)
}

// LogicScore scales 1000 by the share solved, less 2 per second up to 500
func LogicScore(correct, total int, d time.Duration) int {
	return ratioScore(correct, total, min(seconds(d)*2, 500))
}

// FocusScore scales 1000 by the share solved, less 3 per second up to 500
func FocusScore(correct, total int, d time.Duration) int {
	return ratioScore(correct, total, min(seconds(d)*3, 500))
}

// SequentialScore is 1000 less 5 per second
func SequentialScore(d time.Duration) int {
	return max(0, maxScore-seconds(d)*5)
}

func ratioScore(correct, total, penalty int) int {
	if total <= 0 {
		return 0
	}
	correct = max(0, min(correct, total))
	score := float64(correct)/float64(total)*maxScore - float64(penalty)
	return int(math.Max(0, math.Round(score)))
}
