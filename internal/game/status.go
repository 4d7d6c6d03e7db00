package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Status is a flat overview of the game for dashboards and the CLI
type Status struct {
	GameID        string    `json:"gameId"`
	Stage         Stage     `json:"stage"`
	Date          time.Time `json:"date"`
	Name          string    `json:"name"`
	University    string    `json:"university,omitempty"`
	Semester      int       `json:"semester"`
	GPA           float64   `json:"gpa"`
	CareerLevel   string    `json:"careerLevel"`
	Company       string    `json:"company,omitempty"`
	Position      string    `json:"position,omitempty"`
	Salary        float64   `json:"salary"`
	Experience    float64   `json:"experience"`
	Energy        int       `json:"energy"`
	Stress        int       `json:"stress"`
	Satisfaction  int       `json:"satisfaction"`
	Health        int       `json:"health"`
	ResumeQuality float64   `json:"resumeQuality"`
	ResumeLevel   string    `json:"resumeLevel"`
	TotalEarned   float64   `json:"totalEarned"`
	DaysPlayed    int       `json:"daysPlayed"`
	PendingEvent  bool      `json:"pendingEvent"`
}

// Status collects the overview
func (gm *GameManager) Status() Status {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()

	v := gm.vitals.State()
	edu := gm.education.State()
	st := Status{
		GameID:        gm.id,
		Stage:         gm.stage,
		Date:          v.CurrentDate,
		Name:          gm.character.Name,
		Semester:      edu.Semester,
		GPA:           edu.GPA,
		CareerLevel:   string(gm.career.CareerLevel()),
		Salary:        gm.career.Salary(),
		Experience:    gm.career.ExperienceAt(v.CurrentDate),
		Energy:        v.Energy,
		Stress:        v.Stress,
		Satisfaction:  v.Satisfaction,
		Health:        v.Health,
		ResumeQuality: gm.resume.QualityScore,
		ResumeLevel:   string(gm.resume.QualityLevel),
		TotalEarned:   v.Stats.TotalSalaryEarned,
		DaysPlayed:    v.Stats.DaysPlayed,
		PendingEvent:  v.CurrentEvent != nil || edu.ActiveEvent != nil,
	}
	if uni, ok := gm.tables.University(edu.UniversityID); ok {
		st.University = uni.Name
	}
	if job := gm.career.CurrentJob(); job != nil {
		st.Company = job.Company
		st.Position = job.Position
	}
	return st
}

// Summary renders the status as a few human-readable lines
func (s Status) Summary() string {
	var b strings.Builder

	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "%s, %s, %s\n", name, strings.ReplaceAll(string(s.Stage), "_", " "), s.Date.Format("2 Jan 2006"))

	switch s.Stage {
	case StageEducation:
		fmt.Fprintf(&b, "%s semester at %s, GPA %.2f\n", humanize.Ordinal(s.Semester), s.University, s.GPA)
	case StageCareer:
		if s.Company != "" {
			fmt.Fprintf(&b, "%s at %s, %s AZN a month\n", s.Position, s.Company, humanize.Commaf(s.Salary))
		} else {
			b.WriteString("Looking for work\n")
		}
		fmt.Fprintf(&b, "Career level %s, %.1f years of experience\n", s.CareerLevel, s.Experience)
	}

	fmt.Fprintf(&b, "Energy %d, stress %d, satisfaction %d, health %d\n", s.Energy, s.Stress, s.Satisfaction, s.Health)
	fmt.Fprintf(&b, "Resume %.2f (%s)\n", s.ResumeQuality, s.ResumeLevel)
	fmt.Fprintf(&b, "%s days played, %s AZN earned", humanize.Comma(int64(s.DaysPlayed)), humanize.Commaf(s.TotalEarned))
	if s.PendingEvent {
		b.WriteString("\nAn event is waiting for a decision")
	}
	return b.String()
}
