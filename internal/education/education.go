// Package education models university progress: semester catalogs, grades
// and GPA, the per-semester time budget and the skills it grows, and the
// random events a semester can bring.
package education

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/dice"
	"github.com/user/career-path/internal/types"
)

var (
	ErrUnknownCourse  = errors.New("course not in any catalog up to the current semester")
	ErrInvalidGrade   = errors.New("invalid grade")
	ErrTooManyCourses = errors.New("too many courses selected")
	ErrGraduated      = errors.New("education already completed")
)

// Activity is one bucket of the semester time budget
type Activity string

const (
	Study            Activity = "study"
	SkillDevelopment Activity = "skillDevelopment"
	Networking       Activity = "networking"
	PartTimeWork     Activity = "partTimeWork"
	Extracurricular  Activity = "extracurricular"
)

// Activities lists every activity
var Activities = []Activity{Study, SkillDevelopment, Networking, PartTimeWork, Extracurricular}

// SkillKey names a skill grown through university life
type SkillKey string

const (
	AcademicKnowledge SkillKey = "academicKnowledge"
	Programming       SkillKey = "programming"
	ProblemSolving    SkillKey = "problemSolving"
	Communication     SkillKey = "communication"
	Teamwork          SkillKey = "teamwork"
	CriticalThinking  SkillKey = "criticalThinking"
)

// Skills lists every education skill
var Skills = []SkillKey{AcademicKnowledge, Programming, ProblemSolving, Communication, Teamwork, CriticalThinking}

// Grade is a letter grade
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradePoint converts a grade to its 4.0-scale value
func GradePoint(g Grade) (float64, bool) {
	switch g {
	case GradeA:
		return 4.0, true
	case GradeB:
		return 3.0, true
	case GradeC:
		return 2.0, true
	case GradeD:
		return 1.0, true
	case GradeF:
		return 0.0, true
	}
	return 0, false
}

// skill gained per allocated time unit
var growth = map[Activity]map[SkillKey]float64{
	Study:            {AcademicKnowledge: 0.5},
	SkillDevelopment: {Programming: 0.3, ProblemSolving: 0.2},
	Networking:       {Communication: 0.3, Teamwork: 0.2},
	PartTimeWork:     {Programming: 0.1, Communication: 0.1},
	Extracurricular:  {Teamwork: 0.2, CriticalThinking: 0.1},
}

// EnergyRecovery is restored to the player at every semester break
const EnergyRecovery = 20

// SemesterRecord is an immutable snapshot of a finished semester
type SemesterRecord struct {
	Semester   int                  `json:"semester"`
	Courses    []content.Course     `json:"courses"`
	Grades     map[string]Grade     `json:"grades"`
	Allocation map[Activity]int     `json:"allocation"`
	GPA        float64              `json:"gpa"`
	SkillGains map[SkillKey]float64 `json:"skillGains"`
}

// State is the persisted education document
type State struct {
	UniversityID    string               `json:"universityId"`
	ProgramID       string               `json:"programId"`
	Semester        int                  `json:"semester"`
	SelectedCourses []content.Course     `json:"selectedCourses"`
	CourseGrades    map[string]Grade     `json:"courseGrades"`
	GPA             float64              `json:"gpa"`
	TimeUnits       int                  `json:"timeUnits"`
	AllocatedTime   map[Activity]int     `json:"allocatedTime"`
	Skills          map[SkillKey]float64 `json:"skills"`
	ActiveEvent     *types.Event         `json:"activeEvent"`
	SemesterHistory []SemesterRecord     `json:"semesterHistory"`
	Graduated       bool                 `json:"graduated"`
}

// Catalog supplies per-semester course lists
type Catalog interface {
	CoursesForSemester(semester int) []content.Course
}

// Config tunes the education model
type Config struct {
	Semesters   int
	TimeUnits   int
	MaxCourses  int
	EventChance float64
}

// DefaultConfig is the standard four-year degree
var DefaultConfig = Config{
	Semesters:   8,
	TimeUnits:   10,
	MaxCourses:  4,
	EventChance: 0.3,
}

// SemesterReport describes what advancing a semester did
type SemesterReport struct {
	Record          SemesterRecord       `json:"record"`
	SkillGains      map[SkillKey]float64 `json:"skillGains"`
	EnergyRecovered int                  `json:"energyRecovered"`
	Event           *types.Event         `json:"event,omitempty"`
	Graduated       bool                 `json:"graduated"`
}

// Model holds the education state and its collaborators
type Model struct {
	state   State
	catalog Catalog
	events  []types.Event
	rng     *dice.DiceRoller
	cfg     Config
}

// NewModel creates an education model in its default state
func NewModel(cfg Config, catalog Catalog, events []types.Event, rng *dice.DiceRoller) *Model {
	m := &Model{
		catalog: catalog,
		events:  events,
		rng:     rng,
		cfg:     cfg,
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
	if m.state.Semester < 1 {
		m.state.Semester = 1
	}
	if m.state.TimeUnits <= 0 {
		m.state.TimeUnits = m.cfg.TimeUnits
	}
	if m.state.CourseGrades == nil {
		m.state.CourseGrades = make(map[string]Grade)
	}
	if m.state.AllocatedTime == nil {
		m.state.AllocatedTime = make(map[Activity]int)
	}
	if m.state.Skills == nil {
		m.state.Skills = make(map[SkillKey]float64, len(Skills))
	}
	for _, k := range Skills {
		if _, ok := m.state.Skills[k]; !ok {
			m.state.Skills[k] = 0
		}
	}
	if m.state.SelectedCourses == nil {
		m.state.SelectedCourses = []content.Course{}
	}
	if m.state.SemesterHistory == nil {
		m.state.SemesterHistory = []SemesterRecord{}
	}
}

// State returns a deep copy of the current state
func (m *Model) State() State {
	s := m.state
	s.SelectedCourses = append([]content.Course{}, m.state.SelectedCourses...)
	s.CourseGrades = copyMap(m.state.CourseGrades)
	s.AllocatedTime = copyMap(m.state.AllocatedTime)
	s.Skills = copyMap(m.state.Skills)
	s.SemesterHistory = append([]SemesterRecord{}, m.state.SemesterHistory...)
	if m.state.ActiveEvent != nil {
		event := *m.state.ActiveEvent
		s.ActiveEvent = &event
	}
	return s
}

// Semester returns the current semester number
func (m *Model) Semester() int { return m.state.Semester }

// GPA returns the current GPA
func (m *Model) GPA() float64 { return m.state.GPA }

// Graduated reports whether every semester is done
func (m *Model) Graduated() bool { return m.state.Graduated }

// Enroll records the university and program
func (m *Model) Enroll(universityID, programID string) {
	m.state.UniversityID = universityID
	m.state.ProgramID = programID
}

// GetAvailableCourses returns the current semester's catalog; empty once graduated.
func (m *Model) GetAvailableCourses() []content.Course {
	if m.state.Semester > m.cfg.Semesters {
		return []content.Course{}
	}
	return m.catalog.CoursesForSemester(m.state.Semester)
}

// SelectCourses replaces the selection with the ids found in the current
// catalog. Unknown ids are dropped silently; more than MaxCourses known ids
// is rejected without mutation.
func (m *Model) SelectCourses(ids []string) error {
	available := m.GetAvailableCourses()
	selected := make([]content.Course, 0, len(ids))
	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		for _, c := range available {
			if c.ID == id {
				selected = append(selected, c)
				seen[id] = true
				break
			}
		}
	}

	if m.cfg.MaxCourses > 0 && len(selected) > m.cfg.MaxCourses {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCourses, len(selected), m.cfg.MaxCourses)
	}

	m.state.SelectedCourses = selected
	return nil
}

// AllocateTime replaces the allocation wholesale. It reports false and
// changes nothing if the total exceeds the time budget or any bucket is
// negative or unknown.
func (m *Model) AllocateTime(allocation map[Activity]int) bool {
	total := 0
	for activity, units := range allocation {
		if units < 0 {
			return false
		}
		if _, ok := growth[activity]; !ok {
			return false
		}
		total += units
	}
	if total > m.state.TimeUnits {
		return false
	}

	m.state.AllocatedTime = copyMap(allocation)
	return true
}

// CompleteCourse records a grade and recomputes the GPA from scratch
func (m *Model) CompleteCourse(courseID string, grade Grade) error {
	if _, ok := GradePoint(grade); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidGrade, grade)
	}
	if _, ok := m.findCourse(courseID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCourse, courseID)
	}

	m.state.CourseGrades[courseID] = grade
	m.recalculateGPA()
	return nil
}

// findCourse searches every catalog from the first semester up to the current one
func (m *Model) findCourse(courseID string) (content.Course, bool) {
	last := m.state.Semester
	if last > m.cfg.Semesters {
		last = m.cfg.Semesters
	}
	for semester := 1; semester <= last; semester++ {
		for _, c := range m.catalog.CoursesForSemester(semester) {
			if c.ID == courseID {
				return c, true
			}
		}
	}
	return content.Course{}, false
}

func (m *Model) recalculateGPA() {
	points, credits := 0.0, 0
	for id, grade := range m.state.CourseGrades {
		course, ok := m.findCourse(id)
		if !ok {
			continue
		}
		gp, _ := GradePoint(grade)
		points += gp * float64(course.Credits)
		credits += course.Credits
	}

	if credits == 0 {
		m.state.GPA = 0
		return
	}
	m.state.GPA = math.Round(points/float64(credits)*100) / 100
}

// AdvanceSemester closes the current semester: it archives a snapshot, grows
// skills from the time allocation, moves to the next semester, resets the
// selection and rolls for a semester event.
func (m *Model) AdvanceSemester() (SemesterReport, error) {
	if m.state.Graduated {
		return SemesterReport{}, ErrGraduated
	}

	gains := make(map[SkillKey]float64)
	for activity, units := range m.state.AllocatedTime {
		for skill, rate := range growth[activity] {
			gains[skill] += rate * float64(units)
		}
	}
	for skill, gain := range gains {
		m.state.Skills[skill] += gain
	}

	record := SemesterRecord{
		Semester:   m.state.Semester,
		Courses:    append([]content.Course{}, m.state.SelectedCourses...),
		Grades:     make(map[string]Grade),
		Allocation: copyMap(m.state.AllocatedTime),
		GPA:        m.state.GPA,
		SkillGains: copyMap(gains),
	}
	for _, c := range m.catalog.CoursesForSemester(m.state.Semester) {
		if grade, ok := m.state.CourseGrades[c.ID]; ok {
			record.Grades[c.ID] = grade
		}
	}
	m.state.SemesterHistory = append(m.state.SemesterHistory, record)

	m.state.Semester++
	m.state.SelectedCourses = []content.Course{}
	m.state.AllocatedTime = make(map[Activity]int)

	report := SemesterReport{
		Record:          record,
		SkillGains:      gains,
		EnergyRecovered: EnergyRecovery,
	}

	if m.state.Semester > m.cfg.Semesters {
		m.state.Graduated = true
		m.state.ActiveEvent = nil
		report.Graduated = true
		return report, nil
	}

	// a pending event is kept until it is handled
	if m.state.ActiveEvent == nil && len(m.events) > 0 && m.rng.Chance(m.cfg.EventChance) {
		event := m.events[m.rng.Pick(len(m.events))]
		m.state.ActiveEvent = &event
		report.Event = &event
	}

	return report, nil
}

// ActiveEvent returns the pending semester event, if any
func (m *Model) ActiveEvent() *types.Event {
	return m.state.ActiveEvent
}

// HandleEvent resolves the active event with the chosen option. Effects on
// education skills are applied here; the rest are returned for other models.
// An invalid index or missing event changes nothing and reports false.
func (m *Model) HandleEvent(optionIndex int) (types.EventOption, []types.Effect, bool) {
	option, ok := m.state.ActiveEvent.Option(optionIndex)
	if !ok {
		return types.EventOption{}, nil, false
	}

	rest := types.ApplyEffects(option.Effects, m)
	m.state.ActiveEvent = nil
	return option, rest, true
}

// ApplyScalar implements types.EffectTarget; education owns no scalar fields.
func (m *Model) ApplyScalar(string, float64) bool {
	return false
}

// ApplyNested implements types.EffectTarget for education skills
func (m *Model) ApplyNested(category, key string, delta float64) bool {
	if category != types.CategoryEducation {
		return false
	}
	current, ok := m.state.Skills[SkillKey(key)]
	if !ok {
		return false
	}
	m.state.Skills[SkillKey(key)] = math.Max(0, current+delta)
	return true
}

// Serialize returns the persisted document
func (m *Model) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(m.state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	return data, nil
}

// Restore replaces the state from a document, filling fields the document lacks
func (m *Model) Restore(doc json.RawMessage) error {
	var state State
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &state); err != nil {
			return fmt.Errorf("failed to parse education: %w", err)
		}
	}
	m.state = state
	m.fillDefaults()
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
