// Package game is the orchestrator. GameManager owns every model and makes
// all cross-model calls: stage transitions, time advancement, outcome rolls,
// effect routing and resume resynchronisation.
package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/career-path/config"
	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/dice"
	"github.com/user/career-path/internal/education"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/resume"
	"github.com/user/career-path/internal/vitals"
)

var (
	ErrWrongStage           = errors.New("not available in the current stage")
	ErrUnknownUniversity    = errors.New("university not found")
	ErrUnknownProgram       = errors.New("program not offered by this university")
	ErrNotEnrolled          = errors.New("not enrolled at a university")
	ErrListingNotFound      = errors.New("job listing not found")
	ErrUnknownCertification = errors.New("certification not found")
	ErrNoEvent              = errors.New("no event to resolve")
	ErrInvalidOption        = errors.New("invalid event option")
	ErrMinigameActive       = errors.New("a minigame is already in progress")
	ErrNoMinigame           = errors.New("no minigame in progress")
	ErrUnknownTimeUnit      = errors.New("unknown time unit")
	ErrNoStorage            = errors.New("no storage configured")
	ErrMissingProjectName   = errors.New("project name is required")
)

// GameManager handles the game state and operations
type GameManager struct {
	stateLock sync.RWMutex
	config    config.Config
	Logger    *zap.Logger
	tables    *content.Tables
	dice      *dice.DiceRoller
	storage   Storage

	id         string
	stage      Stage
	progress   Progress
	character  *character.Character
	education  *education.Model
	career     *career.Model
	vitals     *vitals.Model
	minigames  *minigame.Tracker
	resume     resume.Resume
	listings   []career.JobListing
	activeGame *minigame.Session
}

// NewGameManager creates a game manager holding a fresh game. storage may be
// nil, in which case Save and Load fail with ErrNoStorage.
func NewGameManager(cfg config.Config, tables *content.Tables, storage Storage) *GameManager {
	rng := dice.NewDiceRoller()
	if cfg.Game.Seed != 0 {
		rng = dice.NewSeededDiceRoller(cfg.Game.Seed)
	}

	gm := &GameManager{
		config:  cfg,
		Logger:  zap.NewNop(), // Will be set by the server
		tables:  tables,
		dice:    rng,
		storage: storage,
	}

	gm.vitals = vitals.NewModel(cfg.Game.StartTime())
	gm.character = character.New()
	gm.education = education.NewModel(education.Config{
		Semesters:   cfg.Game.Semesters,
		TimeUnits:   cfg.Game.TimeUnits,
		MaxCourses:  cfg.Game.MaxCourses,
		EventChance: cfg.Game.SemesterEventChance,
	}, tables, tables.EducationEvents, rng)
	gm.career = career.NewModel(gm.vitals, rng, tables)
	gm.minigames = minigame.NewTracker()
	gm.reset()

	return gm
}

// SetLogger replaces the logger
func (gm *GameManager) SetLogger(logger *zap.Logger) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	gm.Logger = logger
}

// ID returns the id of the current game
func (gm *GameManager) ID() string {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.id
}

// Stage returns the current stage
func (gm *GameManager) Stage() Stage {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.stage
}

// Tables returns the content tables the game reads from
func (gm *GameManager) Tables() *content.Tables {
	return gm.tables
}

// Reset throws the current game away and starts a new one
func (gm *GameManager) Reset() {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	gm.reset()
	gm.Logger.Info("New game started", zap.String("game_id", gm.id))
}

func (gm *GameManager) reset() {
	gm.id = uuid.New().String()
	gm.stage = StageCharacterCreation
	gm.progress = Progress{}
	gm.character.Reset()
	gm.education.Reset()
	gm.career.Reset()
	gm.vitals.Reset()
	gm.minigames.Reset()
	gm.resume = resume.New()
	gm.listings = nil
	gm.activeGame = nil
	gm.resync()
}

func (gm *GameManager) requireStage(stages ...Stage) error {
	for _, s := range stages {
		if gm.stage == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongStage, gm.stage)
}

func (gm *GameManager) setStage(next Stage) {
	if gm.stage == next {
		return
	}
	gm.Logger.Info("Stage changed",
		zap.String("game_id", gm.id),
		zap.String("from", string(gm.stage)),
		zap.String("to", string(next)),
		zap.Time("date", gm.vitals.Now()))
	gm.stage = next
}

func (gm *GameManager) budget() character.Budget {
	return character.Budget{
		MinAttributePoints: gm.config.Game.AttributeBudgetMin,
		MaxAttributePoints: gm.config.Game.AttributeBudgetMax,
		SkillPoints:        gm.config.Game.SkillBudget,
		ConnectionPoints:   gm.config.Game.ConnectionBudget,
	}
}

// Character returns a copy of the character
func (gm *GameManager) Character() character.Character {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.character.Clone()
}

// SetIdentity sets name, gender, background and hometown during creation
func (gm *GameManager) SetIdentity(name string, gender character.Gender, background character.FamilyBackground, hometown string) bool {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if gm.stage != StageCharacterCreation {
		return false
	}
	ok := gm.character.SetIdentity(name, gender, background, hometown)
	gm.resync()
	return ok
}

// SetAttribute sets one attribute during creation
func (gm *GameManager) SetAttribute(key character.AttributeKey, value int) bool {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if gm.stage != StageCharacterCreation {
		return false
	}
	return gm.character.SetAttribute(key, value)
}

// SetConnection sets one connection during creation
func (gm *GameManager) SetConnection(key character.ConnectionKey, value int) bool {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if gm.stage != StageCharacterCreation {
		return false
	}
	return gm.character.SetConnection(key, value)
}

// SetSkill sets one skill during creation
func (gm *GameManager) SetSkill(key character.SkillKey, value int) bool {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if gm.stage != StageCharacterCreation {
		return false
	}
	ok := gm.character.SetSkill(key, value)
	gm.resync()
	return ok
}

// PointGroup names a set of creation values
type PointGroup string

const (
	PointsAttributes  PointGroup = "attributes"
	PointsConnections PointGroup = "connections"
	PointsSkills      PointGroup = "skills"
)

// SetPoints sets several values of one group during creation. Either every
// value is applied or none is; the refused keys are returned sorted.
func (gm *GameManager) SetPoints(group PointGroup, values map[string]int) []string {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if gm.stage != StageCharacterCreation {
		return keys
	}

	draft := gm.character.Clone()
	var rejected []string
	for _, k := range keys {
		var ok bool
		switch group {
		case PointsAttributes:
			ok = draft.SetAttribute(character.AttributeKey(k), values[k])
		case PointsConnections:
			ok = draft.SetConnection(character.ConnectionKey(k), values[k])
		case PointsSkills:
			ok = draft.SetSkill(character.SkillKey(k), values[k])
		}
		if !ok {
			rejected = append(rejected, k)
		}
	}
	if len(rejected) > 0 {
		return rejected
	}
	*gm.character = draft
	gm.resync()
	return nil
}

// FinalizeCharacter checks the creation budgets, freezes the character and
// moves the game to the education stage
func (gm *GameManager) FinalizeCharacter() error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCharacterCreation); err != nil {
		return err
	}
	if err := gm.character.ValidateBudget(gm.budget()); err != nil {
		gm.Logger.Info("Character rejected",
			zap.String("game_id", gm.id),
			zap.Int("attribute_points", gm.character.TotalAttributePoints()),
			zap.Int("skill_points", gm.character.TotalSkillPoints()),
			zap.Int("connection_points", gm.character.TotalConnectionPoints()),
			zap.Error(err))
		return err
	}

	gm.character.FinalizeCharacter()
	gm.setStage(StageEducation)
	gm.resync()
	return nil
}

// Enroll picks the university and program. It is allowed until the first
// semester has been completed.
func (gm *GameManager) Enroll(universityID, programID string) error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageEducation); err != nil {
		return err
	}
	uni, ok := gm.tables.University(universityID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUniversity, universityID)
	}
	offered := false
	for _, p := range uni.Programs {
		if p == programID {
			offered = true
			break
		}
	}
	if _, ok := gm.tables.Program(programID); !ok || !offered {
		return fmt.Errorf("%w: %s at %s", ErrUnknownProgram, programID, universityID)
	}
	if len(gm.education.State().SemesterHistory) > 0 {
		return fmt.Errorf("%w: studies already under way", ErrWrongStage)
	}

	gm.education.Enroll(universityID, programID)
	gm.Logger.Info("Enrolled",
		zap.String("game_id", gm.id),
		zap.String("university", uni.Name),
		zap.String("program", programID))
	gm.resync()
	return nil
}

func (gm *GameManager) requireEnrolled() error {
	if err := gm.requireStage(StageEducation); err != nil {
		return err
	}
	if gm.education.State().UniversityID == "" {
		return ErrNotEnrolled
	}
	return nil
}

// Education returns a copy of the education state
func (gm *GameManager) Education() education.State {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.education.State()
}

// AvailableCourses returns the current semester's catalog
func (gm *GameManager) AvailableCourses() []content.Course {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.education.GetAvailableCourses()
}

// SelectCourses chooses this semester's courses
func (gm *GameManager) SelectCourses(ids []string) error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if err := gm.requireEnrolled(); err != nil {
		return err
	}
	return gm.education.SelectCourses(ids)
}

// AllocateTime replaces this semester's time allocation
func (gm *GameManager) AllocateTime(allocation map[education.Activity]int) bool {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if gm.requireEnrolled() != nil {
		return false
	}
	return gm.education.AllocateTime(allocation)
}

// CompleteCourse records a grade
func (gm *GameManager) CompleteCourse(courseID string, grade education.Grade) error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	if err := gm.requireEnrolled(); err != nil {
		return err
	}
	if err := gm.education.CompleteCourse(courseID, grade); err != nil {
		return err
	}
	gm.resync()
	return nil
}

// Career returns a copy of the career state
func (gm *GameManager) Career() career.State {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.career.State()
}

// Vitals returns a copy of the vitals state
func (gm *GameManager) Vitals() vitals.State {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.vitals.State()
}

// Resume returns a copy of the current resume
func (gm *GameManager) Resume() resume.Resume {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return resume.Normalize(gm.resume)
}

// Snapshot serialises the whole game
func (gm *GameManager) Snapshot() (SaveGame, error) {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.snapshot()
}

func (gm *GameManager) snapshot() (SaveGame, error) {
	save := SaveGame{
		Version:  SaveVersion,
		ID:       gm.id,
		SavedAt:  gm.vitals.Now(),
		Stage:    gm.stage,
		Progress: gm.progress,
		Resume:   resume.Normalize(gm.resume),
		Listings: append([]career.JobListing{}, gm.listings...),
	}
	if gm.activeGame != nil {
		session := *gm.activeGame
		save.ActiveMinigame = &session
	}

	var err error
	if save.Character, err = gm.character.Serialize(); err != nil {
		return SaveGame{}, err
	}
	if save.Education, err = gm.education.Serialize(); err != nil {
		return SaveGame{}, err
	}
	if save.Career, err = gm.career.Serialize(); err != nil {
		return SaveGame{}, err
	}
	if save.Vitals, err = gm.vitals.Serialize(); err != nil {
		return SaveGame{}, err
	}
	if save.Minigames, err = gm.minigames.Serialize(); err != nil {
		return SaveGame{}, err
	}
	return save, nil
}

// Restore replaces the game with a saved one. Missing sections restore to
// their defaults. On error the previous game is kept.
func (gm *GameManager) Restore(save SaveGame) error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	previous, err := gm.snapshot()
	if err != nil {
		return err
	}
	if err := gm.restore(save); err != nil {
		if rerr := gm.restore(previous); rerr != nil {
			gm.Logger.Error("Failed to roll back after restore error", zap.Error(rerr))
		}
		return err
	}
	return nil
}

func (gm *GameManager) restore(save SaveGame) error {
	if err := gm.character.Restore(save.Character); err != nil {
		return err
	}
	if err := gm.education.Restore(save.Education); err != nil {
		return err
	}
	if err := gm.career.Restore(save.Career); err != nil {
		return err
	}
	if err := gm.vitals.Restore(save.Vitals); err != nil {
		return err
	}
	if err := gm.minigames.Restore(save.Minigames); err != nil {
		return err
	}

	gm.id = save.ID
	if gm.id == "" {
		gm.id = uuid.New().String()
	}
	gm.stage = save.Stage
	if gm.stage == "" {
		gm.stage = StageCharacterCreation
	}
	gm.progress = save.Progress
	gm.resume = resume.Normalize(save.Resume)
	gm.listings = append([]career.JobListing{}, save.Listings...)
	gm.activeGame = nil
	if save.ActiveMinigame != nil {
		session := *save.ActiveMinigame
		gm.activeGame = &session
	}
	gm.resync()
	return nil
}

// Save writes the game to a storage slot
func (gm *GameManager) Save(ctx context.Context, slot string) error {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()

	if gm.storage == nil {
		return ErrNoStorage
	}
	save, err := gm.snapshot()
	if err != nil {
		return err
	}
	if err := gm.storage.Save(ctx, slot, save); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	gm.Logger.Info("Game saved", zap.String("game_id", gm.id), zap.String("slot", slot))
	return nil
}

// Load replaces the game with the one in a storage slot
func (gm *GameManager) Load(ctx context.Context, slot string) error {
	if gm.storage == nil {
		return ErrNoStorage
	}
	save, err := gm.storage.Load(ctx, slot)
	if err != nil {
		return err
	}
	if err := gm.Restore(save); err != nil {
		return fmt.Errorf("failed to restore slot %s: %w", slot, err)
	}
	gm.Logger.Info("Game loaded", zap.String("game_id", save.ID), zap.String("slot", slot))
	return nil
}

func (gm *GameManager) now() time.Time {
	return gm.vitals.Now()
}

// Slots lists the saved games in storage
func (gm *GameManager) Slots(ctx context.Context) ([]SlotInfo, error) {
	if gm.storage == nil {
		return nil, ErrNoStorage
	}
	return gm.storage.List(ctx)
}
