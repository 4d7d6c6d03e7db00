// Package career models the job search pipeline (applications, interviews,
// offers), employment history, career level, and the military service record.
package career

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/dice"
	"github.com/user/career-path/internal/types"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrInvalidTransition   = errors.New("invalid application status transition")
	ErrInterviewOutOfOrder = errors.New("interview stage out of order")
	ErrInterviewPending    = errors.New("application already has a pending interview")
	ErrInterviewCompleted  = errors.New("interview already completed")
	ErrInvalidResult       = errors.New("invalid interview result")
	ErrNoCurrentJob        = errors.New("no current job")
)

// Level is a coarse seniority classification
type Level string

const (
	LevelEntry         Level = "entry"
	LevelProfessional  Level = "professional"
	LevelDistinguished Level = "distinguished"
	LevelExecutive     Level = "executive"
)

// Levels lists the career levels from junior to senior
var Levels = []Level{LevelEntry, LevelProfessional, LevelDistinguished, LevelExecutive}

func (l Level) rank() int {
	for i, level := range Levels {
		if level == l {
			return i
		}
	}
	return 0
}

// Clock supplies the current game date
type Clock interface {
	Now() time.Time
}

// Candidate is the read-only view of the character the career rules consult
type Candidate interface {
	Attribute(key character.AttributeKey) int
	Skill(key character.SkillKey) float64
}

// JobRecord is a current or past position
type JobRecord struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"companyId"`
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	Category      string     `json:"category"`
	International bool       `json:"international"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Salary        float64    `json:"salary"`
	LeaveReason   string     `json:"leaveReason,omitempty"`
}

// State is the persisted career document
type State struct {
	MilitaryService   *MilitaryRecord `json:"militaryService"`
	WorkExperiences   []JobRecord     `json:"workExperiences"`
	CurrentJob        *JobRecord      `json:"currentJob"`
	Applications      []Application   `json:"applications"`
	Interviews        []Interview     `json:"interviews"`
	CareerLevel       Level           `json:"careerLevel"`
	YearsOfExperience float64         `json:"yearsOfExperience"`
	Salary            float64         `json:"salary"`
	Satisfaction      int             `json:"satisfaction"`
	Reputation        int             `json:"reputation"`
}

// Model holds the career state and its collaborators
type Model struct {
	state  State
	clock  Clock
	rng    *dice.DiceRoller
	market *content.Tables
}

// NewModel creates a career model in its default state
func NewModel(clock Clock, rng *dice.DiceRoller, market *content.Tables) *Model {
	m := &Model{
		clock:  clock,
		rng:    rng,
		market: market,
	}
	m.Reset()
	return m
}

// Reset restores the default state
func (m *Model) Reset() {
	m.state = State{}
	m.fillDefaults()
}

func (m *Model) fillDefaults() {
	if m.state.WorkExperiences == nil {
		m.state.WorkExperiences = []JobRecord{}
	}
	if m.state.Applications == nil {
		m.state.Applications = []Application{}
	}
	if m.state.Interviews == nil {
		m.state.Interviews = []Interview{}
	}
	if m.state.CareerLevel == "" {
		m.state.CareerLevel = LevelEntry
	}
	if m.state.Satisfaction == 0 {
		m.state.Satisfaction = 5
	}
}

// State returns a copy of the current state
func (m *Model) State() State {
	s := m.state
	s.WorkExperiences = append([]JobRecord{}, m.state.WorkExperiences...)
	s.Applications = append([]Application{}, m.state.Applications...)
	s.Interviews = append([]Interview{}, m.state.Interviews...)
	if m.state.CurrentJob != nil {
		job := *m.state.CurrentJob
		s.CurrentJob = &job
	}
	if m.state.MilitaryService != nil {
		record := m.state.MilitaryService.clone()
		s.MilitaryService = &record
	}
	return s
}

// CareerLevel returns the current classification
func (m *Model) CareerLevel() Level { return m.state.CareerLevel }

// CurrentJob returns the current position, if any
func (m *Model) CurrentJob() *JobRecord {
	if m.state.CurrentJob == nil {
		return nil
	}
	job := *m.state.CurrentJob
	return &job
}

// Salary returns the current monthly salary
func (m *Model) Salary() float64 { return m.state.Salary }

// ApplyScalar implements types.EffectTarget for reputation, salary and job satisfaction
func (m *Model) ApplyScalar(field string, delta float64) bool {
	switch field {
	case types.FieldReputation:
		m.state.Reputation = clamp(m.state.Reputation+int(delta), 0, 10)
		return true
	case types.FieldJobSatisfaction:
		m.state.Satisfaction = clamp(m.state.Satisfaction+int(delta), 1, 10)
		return true
	case types.FieldSalary:
		if m.state.CurrentJob == nil {
			return false
		}
		m.state.Salary += delta
		if m.state.Salary < 0 {
			m.state.Salary = 0
		}
		m.state.CurrentJob.Salary = m.state.Salary
		return true
	}
	return false
}

// ApplyNested implements types.EffectTarget; career owns no keyed categories.
func (m *Model) ApplyNested(string, string, float64) bool {
	return false
}

// Serialize returns the persisted document
func (m *Model) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(m.state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal career: %w", err)
	}
	return data, nil
}

// Restore replaces the state from a document, filling fields the document lacks
func (m *Model) Restore(doc json.RawMessage) error {
	var state State
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &state); err != nil {
			return fmt.Errorf("failed to parse career: %w", err)
		}
	}
	m.state = state
	m.fillDefaults()
	return nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
