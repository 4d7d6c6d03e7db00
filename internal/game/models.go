package game

import (
	"encoding/json"
	"time"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/resume"
)

// SaveVersion is written into every save document
const SaveVersion = 1

// Stage is the phase of life the character is in
type Stage string

const (
	StageCharacterCreation Stage = "character_creation"
	StageEducation         Stage = "education"
	StageMilitary          Stage = "military"
	StageCareer            Stage = "career"
)

// TimeUnit is the granularity of one AdvanceTime call
type TimeUnit string

const (
	UnitDay      TimeUnit = "day"
	UnitWeek     TimeUnit = "week"
	UnitMonth    TimeUnit = "month"
	UnitSemester TimeUnit = "semester"
)

// days in a month of game time; pay and military ticks run on this cadence
const daysPerMonth = 30

// Progress counts days toward the next periodic tick of each stage
type Progress struct {
	SemesterDays int `json:"semesterDays"`
	ServiceDays  int `json:"serviceDays"`
	PayDays      int `json:"payDays"`
}

// SaveGame is the whole game as a flat document. Each model writes its own
// namespace so older saves restore with defaults for whatever they lack.
type SaveGame struct {
	Version        int                 `json:"version"`
	ID             string              `json:"id"`
	SavedAt        time.Time           `json:"savedAt"`
	Stage          Stage               `json:"stage"`
	Progress       Progress            `json:"progress"`
	Character      json.RawMessage     `json:"character"`
	Education      json.RawMessage     `json:"education"`
	Career         json.RawMessage     `json:"career"`
	Vitals         json.RawMessage     `json:"vitals"`
	Minigames      json.RawMessage     `json:"minigames"`
	Resume         resume.Resume       `json:"resume"`
	Listings       []career.JobListing `json:"listings"`
	ActiveMinigame *minigame.Session   `json:"activeMinigame,omitempty"`
}

// AdvanceReport describes everything one AdvanceTime call caused
type AdvanceReport struct {
	Unit           TimeUnit             `json:"unit"`
	Days           int                  `json:"days"`
	Date           time.Time            `json:"date"`
	Stage          Stage                `json:"stage"`
	StageChanged   bool                 `json:"stageChanged"`
	Semesters      []SemesterSummary    `json:"semesters,omitempty"`
	ServiceTicks   []career.ServiceTick `json:"serviceTicks,omitempty"`
	SalaryPaid     float64              `json:"salaryPaid"`
	Applications   []career.Application `json:"applications,omitempty"`
	Interviews     []career.Interview   `json:"interviews,omitempty"`
	TriggeredEvent *EventView           `json:"triggeredEvent,omitempty"`
}

// SemesterSummary is the part of a semester report worth showing the player
type SemesterSummary struct {
	Semester  int     `json:"semester"`
	GPA       float64 `json:"gpa"`
	Graduated bool    `json:"graduated"`
	EventID   string  `json:"eventId,omitempty"`
}

// EventView is an event as presented to the player, with where it came from
type EventView struct {
	Source      string   `json:"source"` // life or education
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}
