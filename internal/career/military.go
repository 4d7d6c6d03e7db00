package career

import (
	"errors"
	"math"
	"time"

	"github.com/user/career-path/internal/character"
)

var (
	ErrMilitaryStarted   = errors.New("military service already started")
	ErrNoMilitaryService = errors.New("no military service in progress")
	ErrServiceCompleted  = errors.New("military service already completed")
)

// RankLadder lists the ranks a conscript can finish service with
var RankLadder = []string{
	"Private",
	"Private First Class",
	"Corporal",
	"Junior Sergeant",
	"Sergeant",
	"Senior Sergeant",
}

var commendations = []string{
	"Excellence in Training",
	"Exemplary Discipline",
	"Marksmanship Badge",
	"Signals Proficiency",
	"Commander's Letter of Thanks",
}

// soft skills that service builds up; every technical skill may decay
var serviceSoftSkills = []character.SkillKey{character.DisciplineSkill, character.Communication, character.Teamwork}

const (
	serviceSkillDecay      = 0.1
	serviceSkillGain       = 0.2
	serviceDecayChance     = 0.5
	commendationChance     = 0.3
	defaultServiceDuration = 12
)

// MilitaryRecord tracks compulsory service
type MilitaryRecord struct {
	Branch         string                         `json:"branch"`
	Unit           string                         `json:"unit"`
	StartDate      time.Time                      `json:"startDate"`
	EndDate        *time.Time                     `json:"endDate,omitempty"`
	DurationMonths int                            `json:"durationMonths"`
	MonthsServed   int                            `json:"monthsServed"`
	Rank           string                         `json:"rank"`
	Commendations  []string                       `json:"commendations"`
	SkillChanges   map[character.SkillKey]float64 `json:"skillChanges"`
	Completed      bool                           `json:"completed"`
}

func (r MilitaryRecord) clone() MilitaryRecord {
	c := r
	c.Commendations = append([]string{}, r.Commendations...)
	c.SkillChanges = make(map[character.SkillKey]float64, len(r.SkillChanges))
	for k, v := range r.SkillChanges {
		c.SkillChanges[k] = v
	}
	if r.EndDate != nil {
		end := *r.EndDate
		c.EndDate = &end
	}
	return c
}

// Due reports whether the planned duration has been served
func (r MilitaryRecord) Due() bool {
	return r.MonthsServed >= r.DurationMonths
}

// MilitaryDetails describes the service being started
type MilitaryDetails struct {
	Branch         string
	Unit           string
	DurationMonths int
}

// MilitaryEndDetails carries anything awarded at discharge
type MilitaryEndDetails struct {
	Commendations []string
}

// ServiceTick is what one month of service did. SkillDeltas are for the
// caller to apply to the character.
type ServiceTick struct {
	Month        int                            `json:"month"`
	SkillDeltas  map[character.SkillKey]float64 `json:"skillDeltas"`
	Commendation string                         `json:"commendation,omitempty"`
}

// MilitaryService returns the service record, if any
func (m *Model) MilitaryService() *MilitaryRecord {
	if m.state.MilitaryService == nil {
		return nil
	}
	record := m.state.MilitaryService.clone()
	return &record
}

// StartMilitaryService opens the service record. It can only happen once.
func (m *Model) StartMilitaryService(details MilitaryDetails) error {
	if m.state.MilitaryService != nil {
		return ErrMilitaryStarted
	}

	duration := details.DurationMonths
	if duration <= 0 {
		duration = defaultServiceDuration
	}
	branch := details.Branch
	if branch == "" {
		branch = "Land Forces"
	}

	m.state.MilitaryService = &MilitaryRecord{
		Branch:         branch,
		Unit:           details.Unit,
		StartDate:      m.clock.Now(),
		DurationMonths: duration,
		Rank:           RankLadder[0],
		Commendations:  []string{},
		SkillChanges:   make(map[character.SkillKey]float64),
	}
	return nil
}

func (m *Model) activeService() (*MilitaryRecord, error) {
	record := m.state.MilitaryService
	if record == nil {
		return nil, ErrNoMilitaryService
	}
	if record.Completed {
		return nil, ErrServiceCompleted
	}
	return record, nil
}

// SkipServiceTime advances service by one month. Each technical skill has an
// even chance to decay by 0.1 (never below 1); discipline, communication and
// teamwork grow by 0.2 (never above 5). There is a 30% chance of a commendation.
func (m *Model) SkipServiceTime(c Candidate) (ServiceTick, error) {
	record, err := m.activeService()
	if err != nil {
		return ServiceTick{}, err
	}

	deltas := make(map[character.SkillKey]float64)
	for _, key := range character.TechnicalSkills {
		if !m.rng.Chance(serviceDecayChance) {
			continue
		}
		current := c.Skill(key)
		deltas[key] = -math.Min(serviceSkillDecay, math.Max(0, current-character.MinSkill))
	}
	for _, key := range serviceSoftSkills {
		current := c.Skill(key)
		deltas[key] = math.Min(serviceSkillGain, math.Max(0, character.MaxSkill-current))
	}

	record.MonthsServed++
	for key, delta := range deltas {
		record.SkillChanges[key] += delta
	}

	tick := ServiceTick{Month: record.MonthsServed, SkillDeltas: deltas}
	if m.rng.Chance(commendationChance) {
		tick.Commendation = commendations[m.rng.Pick(len(commendations))]
		record.Commendations = append(record.Commendations, tick.Commendation)
	}

	return tick, nil
}

// CompleteMilitaryService settles the final rank and closes the record for good.
// Discipline and charisma above average, commendations and luck all push the
// rank up the ladder.
func (m *Model) CompleteMilitaryService(c Candidate, end MilitaryEndDetails) (MilitaryRecord, error) {
	record, err := m.activeService()
	if err != nil {
		return MilitaryRecord{}, err
	}

	record.Commendations = append(record.Commendations, end.Commendations...)

	score := float64(c.Attribute(character.Discipline)-5)*0.4 +
		float64(c.Attribute(character.Charisma)-5)*0.3 +
		float64(len(record.Commendations))*0.5 +
		m.rng.Between(0, 2)
	index := int(math.Floor(score)) + 1
	if index < 0 {
		index = 0
	}
	if index >= len(RankLadder) {
		index = len(RankLadder) - 1
	}

	now := m.clock.Now()
	record.Rank = RankLadder[index]
	record.EndDate = &now
	record.Completed = true

	return record.clone(), nil
}
