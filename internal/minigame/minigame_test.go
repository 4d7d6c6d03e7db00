package minigame

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/career-path/internal/dice"
)

var playedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryScore(t *testing.T) {
	// 8 pairs, 16 moves, 30 seconds
	assert.Equal(t, 780, MemoryScore(16, 30*time.Second))
	assert.Equal(t, 0, MemoryScore(200, time.Minute))
	assert.Equal(t, 1000, MemoryScore(0, 0))
}

func TestRatioScores(t *testing.T) {
	assert.Equal(t, 940, LogicScore(5, 5, 30*time.Second))
	assert.Equal(t, 500, LogicScore(5, 5, time.Hour))
	assert.Equal(t, 567, LogicScore(2, 3, 50*time.Second))
	assert.Equal(t, 0, LogicScore(0, 5, 10*time.Second))
	assert.Equal(t, 0, LogicScore(3, 0, 0))

	assert.Equal(t, 910, FocusScore(8, 8, 30*time.Second))
	assert.Equal(t, 0, FocusScore(4, 8, 10*time.Minute))
}

func TestSequentialScore(t *testing.T) {
	assert.Equal(t, 850, SequentialScore(30*time.Second))
	assert.Equal(t, 0, SequentialScore(5*time.Minute))
}

func TestScoreDispatch(t *testing.T) {
	got, err := Score(KindMemory, Result{Moves: 16, Duration: 30 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 780, got)

	_, err = Score("chess", Result{})
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestNormalizeBoundsResultByBoard(t *testing.T) {
	rng := dice.NewSeededDiceRoller(3)

	logic, err := Start(rng, KindLogic, Hard, playedAt)
	require.NoError(t, err)
	got := logic.Normalize(Result{Correct: 1, Total: 1})
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, 1, got.Correct)
	assert.Equal(t, 7, logic.Normalize(Result{Correct: 9}).Correct)
	assert.Equal(t, 0, logic.Normalize(Result{Correct: -2}).Correct)

	focus, err := Start(rng, KindFocus, Medium, playedAt)
	require.NoError(t, err)
	assert.Equal(t, 8, focus.Normalize(Result{Correct: 2, Total: 2}).Total)

	memory, err := Start(rng, KindMemory, Hard, playedAt)
	require.NoError(t, err)
	assert.Equal(t, 12, memory.Normalize(Result{}).Moves)
	assert.Equal(t, 30, memory.Normalize(Result{Moves: 30}).Moves)
}

func TestGenerateMemory(t *testing.T) {
	rng := dice.NewSeededDiceRoller(1)
	for difficulty, pairs := range map[Difficulty]int{Easy: 6, Medium: 8, Hard: 12} {
		board := GenerateMemory(rng, difficulty)
		assert.Equal(t, pairs, board.Pairs)
		require.Len(t, board.Cards, pairs*2)

		counts := map[string]int{}
		for i, c := range board.Cards {
			assert.Equal(t, i, c.Index)
			counts[c.Symbol]++
		}
		assert.Len(t, counts, pairs)
		for _, n := range counts {
			assert.Equal(t, 2, n)
		}
	}
}

func TestGenerateMemoryIsSeeded(t *testing.T) {
	a := GenerateMemory(dice.NewSeededDiceRoller(42), Medium)
	b := GenerateMemory(dice.NewSeededDiceRoller(42), Medium)
	assert.Equal(t, a, b)
}

func TestGenerateLogic(t *testing.T) {
	rng := dice.NewSeededDiceRoller(2)
	for difficulty, n := range map[Difficulty]int{Easy: 3, Medium: 5, Hard: 7} {
		puzzles := GenerateLogic(rng, difficulty)
		require.Len(t, puzzles, n)
		for _, p := range puzzles {
			require.Len(t, p.Shown, logicSequenceLength-1)
			last := p.Shown[len(p.Shown)-1]
			prev := p.Shown[len(p.Shown)-2]
			diff := last - prev
			if last+diff != p.Answer {
				// geometric
				require.NotZero(t, prev)
				assert.Equal(t, last*(last/prev), p.Answer, p.Pattern)
			}
		}
	}
}

func TestGenerateFocus(t *testing.T) {
	grids := GenerateFocus(dice.NewSeededDiceRoller(3), Hard)
	require.Len(t, grids, 10)
	for _, g := range grids {
		assert.Equal(t, 5, g.Size)
		assert.NotEqual(t, g.Base, g.Odd)

		odd := 0
		for _, c := range g.Cells() {
			if c == g.Odd {
				odd++
			}
		}
		assert.Equal(t, 1, odd)
	}
}

func TestSequentialTapIsStrict(t *testing.T) {
	board := GenerateSequential(dice.NewSeededDiceRoller(4), Easy)
	require.Len(t, board.Tiles, 9)

	sorted := append([]int{}, board.Tiles...)
	sort.Ints(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)

	assert.False(t, board.Tap(2))
	assert.Equal(t, 1, board.Next)
	assert.True(t, board.Tap(1))
	assert.False(t, board.Tap(1))
	assert.False(t, board.Tap(9))
	assert.Equal(t, 2, board.Next)

	for n := 2; n <= 9; n++ {
		assert.True(t, board.Tap(n))
	}
	assert.True(t, board.Done())
	assert.False(t, board.Tap(10))
}

func TestStart(t *testing.T) {
	rng := dice.NewSeededDiceRoller(5)

	s, err := Start(rng, KindSequential, Hard, playedAt)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	require.NotNil(t, s.Sequential)
	assert.Len(t, s.Sequential.Tiles, 25)
	assert.Nil(t, s.Memory)

	_, err = Start(rng, KindLogic, "impossible", playedAt)
	assert.True(t, errors.Is(err, ErrUnknownDifficulty))
	_, err = Start(rng, "chess", Easy, playedAt)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	rng := dice.NewSeededDiceRoller(6)
	s, err := Start(rng, KindMemory, Medium, playedAt)
	require.NoError(t, err)

	rec := tr.Complete(s, 780, 30*time.Second, playedAt)
	assert.True(t, rec.HighScore)
	assert.Equal(t, OutcomeCompleted, rec.Outcome)
	assert.Equal(t, 780, tr.HighScore(KindMemory))

	rec = tr.Complete(s, 500, 50*time.Second, playedAt)
	assert.False(t, rec.HighScore)
	assert.Equal(t, 780, tr.HighScore(KindMemory))

	rec = tr.Abandon(s, 5*time.Second, playedAt)
	assert.Equal(t, OutcomeAbandoned, rec.Outcome)
	assert.Equal(t, 0, rec.Score)
	assert.Equal(t, 780, tr.HighScore(KindMemory))

	state := tr.State()
	require.Len(t, state.History, 3)
	assert.Equal(t, 0, tr.HighScore(KindLogic))

	doc, err := tr.Serialize()
	require.NoError(t, err)
	other := NewTracker()
	require.NoError(t, other.Restore(doc))
	assert.Equal(t, state, other.State())

	require.NoError(t, other.Restore(json.RawMessage(`{}`)))
	assert.NotNil(t, other.State().HighScores)
}
