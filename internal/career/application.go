package career

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the state of one job application
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// legal status moves; interview -> interview covers the next stage being scheduled
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:   {StatusInterview, StatusRejected},
	StatusInterview: {StatusInterview, StatusOffer, StatusRejected},
	StatusOffer:     {StatusAccepted, StatusRejected},
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible
func (s ApplicationStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// JobListing is a generated opening a character can apply for
type JobListing struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"companyId"`
	Company        string   `json:"company"`
	Position       string   `json:"position"`
	Category       string   `json:"category"`
	Level          Level    `json:"level"`
	Salary         float64  `json:"salary"`
	Reputation     int      `json:"reputation"`
	International  bool     `json:"international"`
	RequiredSkills []string `json:"requiredSkills"`
}

// Application tracks one job application through the pipeline
type Application struct {
	ID            string            `json:"id"`
	CompanyID     string            `json:"companyId"`
	Company       string            `json:"company"`
	Position      string            `json:"position"`
	DateApplied   time.Time         `json:"dateApplied"`
	Status        ApplicationStatus `json:"status"`
	SalaryOffered float64           `json:"salaryOffered"`
	JobDetails    JobListing        `json:"jobDetails"`
}

// InterviewType is one stage of the interview chain
type InterviewType string

const (
	InterviewTechnical InterviewType = "technical"
	InterviewHR        InterviewType = "hr"
	InterviewFinal     InterviewType = "final"
)

// InterviewStages is the order every application must pass
var InterviewStages = []InterviewType{InterviewTechnical, InterviewHR, InterviewFinal}

// InterviewResult is the verdict of a completed interview
type InterviewResult string

const (
	ResultPassed InterviewResult = "passed"
	ResultFailed InterviewResult = "failed"
)

// Interview is one scheduled interview stage
type Interview struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"applicationId"`
	Company       string          `json:"company"`
	Position      string          `json:"position"`
	Date          time.Time       `json:"date"`
	Type          InterviewType   `json:"type"`
	Completed     bool            `json:"completed"`
	Result        InterviewResult `json:"result,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// InterviewDetails describes an interview to schedule
type InterviewDetails struct {
	Type InterviewType
	Date time.Time
}

// OfferDetails carries the terms of an offer
type OfferDetails struct {
	Salary    float64
	StartDate time.Time
}

// ApplyForJob appends a new application in the applied state
func (m *Model) ApplyForJob(listing JobListing) Application {
	app := Application{
		ID:            uuid.New().String(),
		CompanyID:     listing.CompanyID,
		Company:       listing.Company,
		Position:      listing.Position,
		DateApplied:   m.clock.Now(),
		Status:        StatusApplied,
		SalaryOffered: listing.Salary,
		JobDetails:    listing,
	}
	m.state.Applications = append(m.state.Applications, app)
	return app
}

// Application returns an application by id
func (m *Model) Application(id string) (Application, bool) {
	if app := m.findApplication(id); app != nil {
		return *app, true
	}
	return Application{}, false
}

// Interview returns an interview by id
func (m *Model) Interview(id string) (Interview, bool) {
	if iv := m.findInterview(id); iv != nil {
		return *iv, true
	}
	return Interview{}, false
}

func (m *Model) findApplication(id string) *Application {
	for i := range m.state.Applications {
		if m.state.Applications[i].ID == id {
			return &m.state.Applications[i]
		}
	}
	return nil
}

func (m *Model) findInterview(id string) *Interview {
	for i := range m.state.Interviews {
		if m.state.Interviews[i].ID == id {
			return &m.state.Interviews[i]
		}
	}
	return nil
}

// UpdateApplicationStatus moves an application along the legal transition
// table. Offer details, when given with an offer, set the offered salary.
func (m *Model) UpdateApplicationStatus(id string, status ApplicationStatus, details *OfferDetails) error {
	app := m.findApplication(id)
	if app == nil {
		return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	}
	if !CanTransition(app.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, status)
	}

	app.Status = status
	if status == StatusOffer && details != nil && details.Salary > 0 {
		app.SalaryOffered = details.Salary
	}
	return nil
}

// interviewsFor returns the interviews of one application in scheduling order
func (m *Model) interviewsFor(applicationID string) []Interview {
	var out []Interview
	for _, iv := range m.state.Interviews {
		if iv.ApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	return out
}

// NextInterviewStage returns the stage an application should be interviewed
// for next. ok is false when the chain is finished or blocked.
func (m *Model) NextInterviewStage(applicationID string) (InterviewType, bool) {
	interviews := m.interviewsFor(applicationID)
	if len(interviews) == 0 {
		return InterviewTechnical, true
	}

	last := interviews[len(interviews)-1]
	if !last.Completed || last.Result != ResultPassed {
		return "", false
	}
	for i, stage := range InterviewStages {
		if stage == last.Type && i+1 < len(InterviewStages) {
			return InterviewStages[i+1], true
		}
	}
	return "", false
}

// ScheduleInterview moves the application to interview and books the next
// stage. Stages must follow technical, hr, final, one at a time.
func (m *Model) ScheduleInterview(applicationID string, details InterviewDetails) (Interview, error) {
	app := m.findApplication(applicationID)
	if app == nil {
		return Interview{}, fmt.Errorf("%w: %s", ErrApplicationNotFound, applicationID)
	}
	if !CanTransition(app.Status, StatusInterview) {
		return Interview{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, StatusInterview)
	}

	for _, iv := range m.interviewsFor(applicationID) {
		if !iv.Completed {
			return Interview{}, ErrInterviewPending
		}
	}

	expected, ok := m.NextInterviewStage(applicationID)
	if !ok || (details.Type != "" && details.Type != expected) {
		return Interview{}, fmt.Errorf("%w: want %s, got %s", ErrInterviewOutOfOrder, expected, details.Type)
	}

	date := details.Date
	if date.IsZero() {
		date = m.clock.Now()
	}

	interview := Interview{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		Company:       app.Company,
		Position:      app.Position,
		Date:          date,
		Type:          expected,
	}
	app.Status = StatusInterview
	m.state.Interviews = append(m.state.Interviews, interview)
	return interview, nil
}

// CompleteInterview records the verdict. It does not move the application;
// chaining to the next stage is up to the caller.
func (m *Model) CompleteInterview(id string, result InterviewResult, notes string) error {
	if result != ResultPassed && result != ResultFailed {
		return fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}
	iv := m.findInterview(id)
	if iv == nil {
		return fmt.Errorf("%w: %s", ErrInterviewNotFound, id)
	}
	if iv.Completed {
		return ErrInterviewCompleted
	}

	iv.Completed = true
	iv.Result = result
	iv.Notes = notes
	return nil
}

// PendingApplications returns applications that have not reached a terminal state
func (m *Model) PendingApplications() []Application {
	var out []Application
	for _, app := range m.state.Applications {
		if !app.Status.Terminal() {
			out = append(out, app)
		}
	}
	return out
}
