// Package interfaces declares what transports need from the game.
package interfaces

import (
	"context"
	"time"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/education"
	"github.com/user/career-path/internal/game"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/resume"
	"github.com/user/career-path/internal/types"
	"github.com/user/career-path/internal/vitals"
)

// GameManager defines the interface for game operations
type GameManager interface {
	ID() string
	Stage() game.Stage
	Status() game.Status
	Tables() *content.Tables

	// Character creation
	Character() character.Character
	SetIdentity(name string, gender character.Gender, background character.FamilyBackground, hometown string) bool
	SetAttribute(key character.AttributeKey, value int) bool
	SetConnection(key character.ConnectionKey, value int) bool
	SetSkill(key character.SkillKey, value int) bool
	SetPoints(group game.PointGroup, values map[string]int) []string
	FinalizeCharacter() error

	// Education
	Enroll(universityID, programID string) error
	Education() education.State
	AvailableCourses() []content.Course
	SelectCourses(ids []string) error
	AllocateTime(allocation map[education.Activity]int) bool
	CompleteCourse(courseID string, grade education.Grade) error

	// Time
	AdvanceTime(unit game.TimeUnit) (game.AdvanceReport, error)

	// Career
	Career() career.State
	SearchJobs(level *career.Level) ([]career.JobListing, error)
	Listings() []career.JobListing
	ApplyForJob(listingID string) (career.Application, error)
	ResolveApplication(applicationID string) (career.Application, error)
	ResolveInterview(interviewID string) (career.Interview, error)
	AcceptOffer(applicationID string) (career.JobRecord, error)
	DeclineOffer(applicationID string) error
	LeaveJob(reason string) (career.JobRecord, error)

	// Vitals and events
	Vitals() vitals.State
	CurrentEvent() *game.EventView
	CompleteEvent(choice int) (types.Outcome, error)
	HandleEducationEvent(choice int) (types.Outcome, error)

	// Resume
	Resume() resume.Resume
	CompleteProject(name, description string, technologies []string) (resume.Project, error)
	EarnCertification(id string) (resume.Certification, error)

	// Minigames
	StartMinigame(kind minigame.Kind, difficulty minigame.Difficulty) (minigame.Session, error)
	ActiveMinigame() *minigame.Session
	TapSequential(n int) (bool, error)
	FinishMinigame(result minigame.Result) (minigame.Record, error)
	AbandonMinigame(elapsed time.Duration) (minigame.Record, error)
	Minigames() minigame.TrackerState

	// Persistence
	Snapshot() (game.SaveGame, error)
	Restore(save game.SaveGame) error
	Reset()
	Save(ctx context.Context, slot string) error
	Load(ctx context.Context, slot string) error
	Slots(ctx context.Context) ([]game.SlotInfo, error)
}

// Ensure game.GameManager satisfies the GameManager interface
var _ GameManager = (*game.GameManager)(nil)
