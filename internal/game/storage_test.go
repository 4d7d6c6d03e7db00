package game

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlot(t *testing.T) {
	for _, slot := range []string{"main", "slot_2", "career-run"} {
		assert.NoError(t, ValidateSlot(slot), slot)
	}
	for _, slot := range []string{"", "../etc/passwd", "with space", "a/b"} {
		assert.ErrorIs(t, ValidateSlot(slot), ErrInvalidSlot, slot)
	}
}

func testSave(id string, stage Stage, savedAt time.Time) SaveGame {
	return SaveGame{Version: SaveVersion, ID: id, Stage: stage, SavedAt: savedAt}
}

func exerciseStorage(t *testing.T, s Storage) {
	ctx := context.Background()
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	slots, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, s.Save(ctx, "old", testSave("g1", StageEducation, day)))
	require.NoError(t, s.Save(ctx, "new", testSave("g2", StageCareer, day.AddDate(1, 0, 0))))
	assert.ErrorIs(t, s.Save(ctx, "bad slot", testSave("g3", StageCareer, day)), ErrInvalidSlot)

	save, err := s.Load(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "g1", save.ID)
	assert.Equal(t, StageEducation, save.Stage)

	// overwrite in place
	require.NoError(t, s.Save(ctx, "old", testSave("g1", StageMilitary, day.AddDate(0, 6, 0))))
	save, err = s.Load(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, StageMilitary, save.Stage)

	slots, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "new", slots[0].Slot)
	assert.Equal(t, "old", slots[1].Slot)
	assert.Equal(t, StageMilitary, slots[1].Stage)

	require.NoError(t, s.Delete(ctx, "old"))
	assert.ErrorIs(t, s.Delete(ctx, "old"), ErrSlotNotFound)
	_, err = s.Load(ctx, "old")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestFileStorage(t *testing.T) {
	s, err := NewFileStorage(filepath.Join(t.TempDir(), "saves"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestSQLiteStorage(t *testing.T) {
	s, err := OpenSQLiteStorage(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestOpenStorage(t *testing.T) {
	s, err := OpenStorage("file", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)
	require.NoError(t, s.Close())

	s, err = OpenStorage("sqlite3", filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Close())

	_, err = OpenStorage("postgres", "whatever")
	assert.Error(t, err)
}

type countingSaver struct {
	saves atomic.Int32
	slot  atomic.Value
}

func (c *countingSaver) Save(_ context.Context, slot string) error {
	c.slot.Store(slot)
	c.saves.Add(1)
	return nil
}

func TestAutosaver(t *testing.T) {
	saver := &countingSaver{}
	a := NewAutosaver(saver, "auto", 10*time.Millisecond, nil)
	a.Start()

	assert.Eventually(t, func() bool { return saver.saves.Load() >= 2 }, time.Second, 5*time.Millisecond)
	a.Stop()
	a.Stop()

	stopped := saver.saves.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, saver.saves.Load())
	assert.Equal(t, "auto", saver.slot.Load())
}
