package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/resume"
	"github.com/user/career-path/internal/vitals"
)

const (
	projectEnergy         = -15
	projectStress         = 5
	projectSkillGain      = 0.1
	certSkillGain         = 0.2
	minigameEnergy        = -5
	minigameSkillGain     = 0.1
	minigameTrainingScore = 700 // needed to train the minigame's skill
)

// skill each minigame trains
var minigameSkills = map[minigame.Kind]character.SkillKey{
	minigame.KindMemory:     character.CriticalThinking,
	minigame.KindLogic:      character.Algorithms,
	minigame.KindFocus:      character.TimeManagement,
	minigame.KindSequential: character.ProblemSolving,
}

// CompleteProject records a side project on the resume
func (gm *GameManager) CompleteProject(name, description string, technologies []string) (resume.Project, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageEducation, StageMilitary, StageCareer); err != nil {
		return resume.Project{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return resume.Project{}, ErrMissingProjectName
	}

	project := resume.Project{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		Technologies: technologies,
		CompletedAt:  gm.now(),
	}
	gm.vitals.ModifyEnergy(projectEnergy)
	gm.vitals.ModifyStress(projectStress)
	gm.character.ImproveSkill(character.Programming, projectSkillGain)
	gm.vitals.IncrementStat(vitals.StatProjectsCompleted, 1)
	gm.resume = resume.AddProject(gm.resume, project)
	gm.resync()

	gm.Logger.Info("Project completed",
		zap.String("game_id", gm.id),
		zap.String("project", name),
		zap.Int("projects", len(gm.resume.Projects)))
	return project, nil
}

// EarnCertification adds a certification from the catalog to the resume
// and trains the skill it certifies. Earning one twice changes nothing.
func (gm *GameManager) EarnCertification(id string) (resume.Certification, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageEducation, StageMilitary, StageCareer); err != nil {
		return resume.Certification{}, err
	}
	cert, ok := gm.tables.Certification(id)
	if !ok {
		return resume.Certification{}, fmt.Errorf("%w: %s", ErrUnknownCertification, id)
	}

	earned := resume.Certification{
		ID:         cert.ID,
		Name:       cert.Name,
		Issuer:     cert.Issuer,
		DateEarned: gm.now(),
	}
	for _, existing := range gm.resume.Additional.Certifications {
		if existing.ID == id {
			return existing, nil
		}
	}

	gm.resume = resume.AddCertification(gm.resume, earned)
	if gm.character.ImproveSkill(character.SkillKey(cert.Skill), certSkillGain) {
		gm.vitals.IncrementStat(vitals.StatSkillsLearned, 1)
	}
	gm.resync()

	gm.Logger.Info("Certification earned",
		zap.String("game_id", gm.id),
		zap.String("certification", cert.Name),
		zap.String("skill", cert.Skill))
	return earned, nil
}

// StartMinigame generates a board. Only one game can be in progress.
func (gm *GameManager) StartMinigame(kind minigame.Kind, difficulty minigame.Difficulty) (minigame.Session, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if gm.activeGame != nil {
		return minigame.Session{}, ErrMinigameActive
	}
	session, err := minigame.Start(gm.dice, kind, difficulty, gm.now())
	if err != nil {
		return minigame.Session{}, err
	}
	gm.activeGame = &session
	return session, nil
}

// ActiveMinigame returns the game in progress, if any
func (gm *GameManager) ActiveMinigame() *minigame.Session {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	if gm.activeGame == nil {
		return nil
	}
	session := *gm.activeGame
	return &session
}

// TapSequential taps one tile of the sequential game in progress
func (gm *GameManager) TapSequential(n int) (bool, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if gm.activeGame == nil || gm.activeGame.Sequential == nil {
		return false, ErrNoMinigame
	}
	board := *gm.activeGame.Sequential
	board.Tiles = append([]int{}, board.Tiles...)
	ok := board.Tap(n)
	gm.activeGame.Sequential = &board
	return ok, nil
}

// FinishMinigame scores the game in progress and records it. A high enough
// score trains the skill the game exercises.
func (gm *GameManager) FinishMinigame(result minigame.Result) (minigame.Record, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session := gm.activeGame
	if session == nil {
		return minigame.Record{}, ErrNoMinigame
	}
	if session.Sequential != nil && !session.Sequential.Done() {
		return minigame.Record{}, minigame.ErrIncomplete
	}
	result = session.Normalize(result)
	score, err := minigame.Score(session.Kind, result)
	if err != nil {
		return minigame.Record{}, err
	}

	record := gm.minigames.Complete(*session, score, result.Duration, gm.now())
	gm.activeGame = nil
	gm.vitals.ModifyEnergy(minigameEnergy)
	if score >= minigameTrainingScore {
		gm.character.ImproveSkill(minigameSkills[session.Kind], minigameSkillGain)
		gm.resync()
	}

	gm.Logger.Info("Minigame finished",
		zap.String("game_id", gm.id),
		zap.String("kind", string(record.Kind)),
		zap.Int("score", record.Score),
		zap.Bool("high_score", record.HighScore))
	return record, nil
}

// AbandonMinigame gives up on the game in progress
func (gm *GameManager) AbandonMinigame(elapsed time.Duration) (minigame.Record, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if gm.activeGame == nil {
		return minigame.Record{}, ErrNoMinigame
	}
	record := gm.minigames.Abandon(*gm.activeGame, elapsed, gm.now())
	gm.activeGame = nil
	return record, nil
}

// Minigames returns the minigame history and high scores
func (gm *GameManager) Minigames() minigame.TrackerState {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.minigames.State()
}
