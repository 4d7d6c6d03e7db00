package minigame

import (
	"github.com/user/career-path/internal/dice"
)

var memorySymbols = []string{
	"cpu", "disk", "router", "server", "cloud", "lock",
	"key", "bug", "git", "shell", "chip", "cable",
	"wifi", "mouse",
}

// Card is one face-down memory card; matching cards share a Symbol
type Card struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
}

// MemoryBoard holds the shuffled pairs
type MemoryBoard struct {
	Pairs int    `json:"pairs"`
	Cards []Card `json:"cards"`
}

// GenerateMemory deals pairs of distinct symbols in shuffled order
func GenerateMemory(rng *dice.DiceRoller, difficulty Difficulty) MemoryBoard {
	pairs := memoryPairs[difficulty]
	symbols := append([]string{}, memorySymbols...)
	rng.Shuffle(len(symbols), func(i, j int) { symbols[i], symbols[j] = symbols[j], symbols[i] })

	cards := make([]Card, 0, pairs*2)
	for _, s := range symbols[:pairs] {
		cards = append(cards, Card{Symbol: s}, Card{Symbol: s})
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	for i := range cards {
		cards[i].Index = i
	}
	return MemoryBoard{Pairs: pairs, Cards: cards}
}

type pattern struct {
	name      string
	geometric bool
	start     int
	step      int
}

// fixed sequence patterns; step is the difference or the ratio
var logicPatterns = []pattern{
	{"add 2", false, 2, 2},
	{"add 3", false, 5, 3},
	{"add 4", false, 1, 4},
	{"add 5", false, 10, 5},
	{"add 7", false, 3, 7},
	{"subtract 10", false, 100, -10},
	{"subtract 3", false, 40, -3},
	{"double", true, 1, 2},
	{"double", true, 3, 2},
	{"triple", true, 2, 3},
	{"triple", true, 1, 3},
	{"times 4", true, 1, 4},
	{"times 5", true, 2, 5},
}

const logicSequenceLength = 6

// LogicPuzzle shows the start of a sequence; Answer is the withheld last term
type LogicPuzzle struct {
	Pattern string `json:"pattern"`
	Shown   []int  `json:"shown"`
	Answer  int    `json:"answer"`
}

// GenerateLogic draws distinct patterns from the table
func GenerateLogic(rng *dice.DiceRoller, difficulty Difficulty) []LogicPuzzle {
	order := make([]int, len(logicPatterns))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	n := min(logicSequences[difficulty], len(order))
	puzzles := make([]LogicPuzzle, 0, n)
	for _, idx := range order[:n] {
		p := logicPatterns[idx]
		terms := make([]int, logicSequenceLength)
		terms[0] = p.start
		for i := 1; i < len(terms); i++ {
			if p.geometric {
				terms[i] = terms[i-1] * p.step
			} else {
				terms[i] = terms[i-1] + p.step
			}
		}
		puzzles = append(puzzles, LogicPuzzle{
			Pattern: p.name,
			Shown:   terms[:len(terms)-1],
			Answer:  terms[len(terms)-1],
		})
	}
	return puzzles
}

var focusPairs = [][2]string{
	{"O", "Q"},
	{"E", "F"},
	{"8", "B"},
	{"M", "N"},
	{"l", "I"},
	{"6", "9"},
	{"P", "R"},
	{"C", "G"},
}

// FocusGrid is a square grid of Base symbols with a single Odd cell
type FocusGrid struct {
	Size     int    `json:"size"`
	Base     string `json:"base"`
	Odd      string `json:"odd"`
	OddIndex int    `json:"oddIndex"`
}

// Cells expands the grid row by row
func (g FocusGrid) Cells() []string {
	cells := make([]string, g.Size*g.Size)
	for i := range cells {
		cells[i] = g.Base
	}
	if g.OddIndex >= 0 && g.OddIndex < len(cells) {
		cells[g.OddIndex] = g.Odd
	}
	return cells
}

// GenerateFocus builds one grid per round
func GenerateFocus(rng *dice.DiceRoller, difficulty Difficulty) []FocusGrid {
	size := focusGridSize[difficulty]
	rounds := focusRounds[difficulty]
	grids := make([]FocusGrid, 0, rounds)
	for i := 0; i < rounds; i++ {
		pair := focusPairs[rng.Pick(len(focusPairs))]
		if rng.Chance(0.5) {
			pair[0], pair[1] = pair[1], pair[0]
		}
		grids = append(grids, FocusGrid{
			Size:     size,
			Base:     pair[0],
			Odd:      pair[1],
			OddIndex: rng.Pick(size * size),
		})
	}
	return grids
}

// SequentialBoard holds shuffled numbered tiles that must be tapped in
// ascending order starting at 1
type SequentialBoard struct {
	Tiles []int `json:"tiles"`
	Next  int   `json:"next"`
}

// GenerateSequential shuffles tiles 1..n
func GenerateSequential(rng *dice.DiceRoller, difficulty Difficulty) *SequentialBoard {
	n := sequentialTiles[difficulty]
	tiles := make([]int, n)
	for i := range tiles {
		tiles[i] = i + 1
	}
	rng.Shuffle(n, func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	return &SequentialBoard{Tiles: tiles, Next: 1}
}

// Tap accepts n only if it is the next number. Any other tap leaves the
// board untouched.
func (b *SequentialBoard) Tap(n int) bool {
	if b.Done() || n != b.Next {
		return false
	}
	b.Next++
	return true
}

// Done reports whether every tile has been tapped
func (b *SequentialBoard) Done() bool {
	return b.Next > len(b.Tiles)
}
