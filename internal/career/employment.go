package career

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const hoursPerYear = 24 * 365.25

// ClassifyCareerLevel derives the level from years of experience and title.
// Title keywords match anywhere in the title, ignoring case.
func ClassifyCareerLevel(years float64, title string) Level {
	title = strings.ToLower(title)
	has := func(keywords ...string) bool {
		for _, k := range keywords {
			if strings.Contains(title, k) {
				return true
			}
		}
		return false
	}
	switch {
	case years >= 10 || has("director", "cto"):
		return LevelExecutive
	case years >= 5 || has("senior", "lead"):
		return LevelDistinguished
	case years >= 2:
		return LevelProfessional
	default:
		return LevelEntry
	}
}

func yearsBetween(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours() / hoursPerYear
}

// ExperienceAt returns archived experience plus time spent in the current job
func (m *Model) ExperienceAt(now time.Time) float64 {
	years := m.state.YearsOfExperience
	if m.state.CurrentJob != nil {
		years += yearsBetween(m.state.CurrentJob.StartDate, now)
	}
	return years
}

// archiveCurrentJob stamps the end date, banks the elapsed years and moves
// the job into the history.
func (m *Model) archiveCurrentJob(reason string) {
	job := m.state.CurrentJob
	if job == nil {
		return
	}

	now := m.clock.Now()
	job.EndDate = &now
	job.LeaveReason = reason
	m.state.YearsOfExperience += yearsBetween(job.StartDate, now)
	m.state.WorkExperiences = append(m.state.WorkExperiences, *job)
	m.state.CurrentJob = nil
}

// AcceptJobOffer turns an offer into the current job. Any existing job is
// archived first.
func (m *Model) AcceptJobOffer(applicationID string, offer OfferDetails) (JobRecord, error) {
	app := m.findApplication(applicationID)
	if app == nil {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrApplicationNotFound, applicationID)
	}
	if !CanTransition(app.Status, StatusAccepted) {
		return JobRecord{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, StatusAccepted)
	}

	m.archiveCurrentJob("accepted new offer")

	salary := offer.Salary
	if salary <= 0 {
		salary = app.SalaryOffered
	}
	start := offer.StartDate
	if start.IsZero() {
		start = m.clock.Now()
	}

	job := JobRecord{
		ID:            uuid.New().String(),
		CompanyID:     app.CompanyID,
		Company:       app.Company,
		Position:      app.Position,
		Category:      app.JobDetails.Category,
		International: app.JobDetails.International,
		StartDate:     start,
		Salary:        salary,
	}

	app.Status = StatusAccepted
	app.SalaryOffered = salary
	m.state.CurrentJob = &job
	m.state.CareerLevel = ClassifyCareerLevel(m.state.YearsOfExperience, job.Position)
	m.state.Salary = salary
	m.state.Satisfaction = 7

	return job, nil
}

// LeaveCurrentJob archives the current job with a reason and clears the salary
func (m *Model) LeaveCurrentJob(reason string) (JobRecord, error) {
	if m.state.CurrentJob == nil {
		return JobRecord{}, ErrNoCurrentJob
	}

	m.archiveCurrentJob(reason)
	m.state.Salary = 0
	return m.state.WorkExperiences[len(m.state.WorkExperiences)-1], nil
}
