package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrSlotNotFound = errors.New("save slot not found")
	ErrInvalidSlot  = errors.New("invalid save slot name")
)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSlot checks that a slot name is safe to use as a file name or key
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// SlotInfo describes one saved game without loading it
type SlotInfo struct {
	Slot    string    `json:"slot" db:"slot"`
	Stage   Stage     `json:"stage" db:"stage"`
	SavedAt time.Time `json:"savedAt" db:"saved_at"`
}

// Storage persists save documents in named slots
type Storage interface {
	Save(ctx context.Context, slot string, save SaveGame) error
	Load(ctx context.Context, slot string) (SaveGame, error)
	List(ctx context.Context) ([]SlotInfo, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

// FileStorage keeps one JSON document per slot in a directory
type FileStorage struct {
	dir       string
	stateLock sync.RWMutex
}

// NewFileStorage creates the save directory if needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) path(slot string) string {
	return filepath.Join(fs.dir, slot+".json")
}

// Save writes the document to disk
func (fs *FileStorage) Save(ctx context.Context, slot string, save SaveGame) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fs.stateLock.Lock()
	defer fs.stateLock.Unlock()

	// Marshal state to JSON
	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	// Write through a temp file and rename into place
	tmp := fs.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write game state: %w", err)
	}
	if err := os.Rename(tmp, fs.path(slot)); err != nil {
		return fmt.Errorf("failed to write game state: %w", err)
	}
	return nil
}

// Load reads a document from disk
func (fs *FileStorage) Load(ctx context.Context, slot string) (SaveGame, error) {
	if err := ValidateSlot(slot); err != nil {
		return SaveGame{}, err
	}
	if err := ctx.Err(); err != nil {
		return SaveGame{}, err
	}

	fs.stateLock.RLock()
	defer fs.stateLock.RUnlock()

	data, err := os.ReadFile(fs.path(slot))
	if os.IsNotExist(err) {
		return SaveGame{}, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return SaveGame{}, fmt.Errorf("failed to read game state file: %w", err)
	}

	var save SaveGame
	if err := json.Unmarshal(data, &save); err != nil {
		return SaveGame{}, fmt.Errorf("failed to parse game state: %w", err)
	}
	return save, nil
}

// List returns every slot, most recently saved first
func (fs *FileStorage) List(ctx context.Context) ([]SlotInfo, error) {
	fs.stateLock.RLock()
	defer fs.stateLock.RUnlock()

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	slots := []SlotInfo{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var header struct {
			Stage   Stage     `json:"stage"`
			SavedAt time.Time `json:"savedAt"`
		}
		if err := json.Unmarshal(data, &header); err != nil {
			continue
		}
		slots = append(slots, SlotInfo{
			Slot:    strings.TrimSuffix(name, ".json"),
			Stage:   header.Stage,
			SavedAt: header.SavedAt,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SavedAt.After(slots[j].SavedAt)
	})
	return slots, nil
}

// Delete removes a slot
func (fs *FileStorage) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	fs.stateLock.Lock()
	defer fs.stateLock.Unlock()

	err := os.Remove(fs.path(slot))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	return err
}

// Close is a no-op for files
func (fs *FileStorage) Close() error {
	return nil
}
