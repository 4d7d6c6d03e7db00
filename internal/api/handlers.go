package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/education"
	"github.com/user/career-path/internal/game"
	"github.com/user/career-path/internal/minigame"
)

type IdentityRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	Gender     string `json:"gender" validate:"required,oneof=male female"`
	Background string `json:"background" validate:"required,oneof=lower middle higher"`
	Hometown   string `json:"hometown" validate:"max=80"`
}

type PointsRequest struct {
	Values map[string]int `json:"values" validate:"required,min=1"`
}

type EnrollRequest struct {
	UniversityID string `json:"university_id" validate:"required"`
	ProgramID    string `json:"program_id" validate:"required"`
}

type SelectCoursesRequest struct {
	CourseIDs []string `json:"course_ids" validate:"required,dive,required"`
}

type GradeRequest struct {
	Grade string `json:"grade" validate:"required,oneof=A B C D F"`
}

type AllocateTimeRequest struct {
	Allocation map[string]int `json:"allocation" validate:"required,dive,min=0"`
}

type ChoiceRequest struct {
	Choice int `json:"choice" validate:"min=0"`
}

type AdvanceRequest struct {
	Unit string `json:"unit" validate:"required,oneof=day week month semester"`
}

type SearchRequest struct {
	Level string `json:"level" validate:"omitempty,oneof=entry professional distinguished executive"`
}

type LeaveRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

type ProjectRequest struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Description  string   `json:"description" validate:"max=1000"`
	Technologies []string `json:"technologies" validate:"max=20,dive,required"`
}

type CertificationRequest struct {
	ID string `json:"id" validate:"required"`
}

type StartMinigameRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=memory logic focus sequential"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

type TapRequest struct {
	N int `json:"n" validate:"min=1"`
}

type FinishMinigameRequest struct {
	Moves      int   `json:"moves" validate:"min=0"`
	Correct    int   `json:"correct" validate:"min=0"`
	Total      int   `json:"total" validate:"min=0,gtefield=Correct"`
	DurationMS int64 `json:"duration_ms" validate:"min=0"`
}

type AbandonMinigameRequest struct {
	DurationMS int64 `json:"duration_ms" validate:"min=0"`
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.game.Status()
	Success(w, r, http.StatusOK, status.Summary(), status)
}

func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Content tables", h.game.Tables())
}

func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Character", h.game.Character())
}

func (h *Handler) SetIdentity(w http.ResponseWriter, r *http.Request) {
	var req IdentityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.game.SetIdentity(req.Name, character.Gender(req.Gender), character.FamilyBackground(req.Background), req.Hometown) {
		Error(w, r, http.StatusConflict, "Identity rejected", "character is already created")
		return
	}
	Success(w, r, http.StatusOK, "Identity set", h.game.Character())
}

// setPoints applies all values of a group or none of them
func (h *Handler) setPoints(w http.ResponseWriter, r *http.Request, group game.PointGroup) {
	var req PointsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if rejected := h.game.SetPoints(group, req.Values); len(rejected) > 0 {
		Error(w, r, http.StatusUnprocessableEntity, "Some values were rejected", rejected)
		return
	}
	Success(w, r, http.StatusOK, "Values set", h.game.Character())
}

func (h *Handler) SetAttributes(w http.ResponseWriter, r *http.Request) {
	h.setPoints(w, r, game.PointsAttributes)
}

func (h *Handler) SetConnections(w http.ResponseWriter, r *http.Request) {
	h.setPoints(w, r, game.PointsConnections)
}

func (h *Handler) SetSkills(w http.ResponseWriter, r *http.Request) {
	h.setPoints(w, r, game.PointsSkills)
}

func (h *Handler) FinalizeCharacter(w http.ResponseWriter, r *http.Request) {
	if err := h.game.FinalizeCharacter(); err != nil {
		h.fail(w, r, "finalize character", err)
		return
	}
	Success(w, r, http.StatusOK, "Character created", h.game.Character())
}

func (h *Handler) GetEducation(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Education", h.game.Education())
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.game.Enroll(req.UniversityID, req.ProgramID); err != nil {
		h.fail(w, r, "enroll", err)
		return
	}
	Success(w, r, http.StatusOK, "Enrolled", h.game.Education())
}

func (h *Handler) AvailableCourses(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Available courses", h.game.AvailableCourses())
}

func (h *Handler) SelectCourses(w http.ResponseWriter, r *http.Request) {
	var req SelectCoursesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.game.SelectCourses(req.CourseIDs); err != nil {
		h.fail(w, r, "select courses", err)
		return
	}
	Success(w, r, http.StatusOK, "Courses selected", h.game.Education().SelectedCourses)
}

func (h *Handler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.game.CompleteCourse(chi.URLParam(r, "courseID"), education.Grade(req.Grade)); err != nil {
		h.fail(w, r, "complete course", err)
		return
	}
	Success(w, r, http.StatusOK, "Course graded", h.game.Education())
}

func (h *Handler) AllocateTime(w http.ResponseWriter, r *http.Request) {
	var req AllocateTimeRequest
	if !h.decode(w, r, &req) {
		return
	}
	allocation := make(map[education.Activity]int, len(req.Allocation))
	for k, v := range req.Allocation {
		allocation[education.Activity(k)] = v
	}
	if !h.game.AllocateTime(allocation) {
		Error(w, r, http.StatusUnprocessableEntity, "Allocation rejected", "unknown activity or over the semester's time budget")
		return
	}
	Success(w, r, http.StatusOK, "Time allocated", h.game.Education().AllocatedTime)
}

func (h *Handler) HandleEducationEvent(w http.ResponseWriter, r *http.Request) {
	var req ChoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	outcome, err := h.game.HandleEducationEvent(req.Choice)
	if err != nil {
		h.fail(w, r, "resolve semester event", err)
		return
	}
	Success(w, r, http.StatusOK, outcome.Description, outcome)
}

func (h *Handler) AdvanceTime(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.game.AdvanceTime(game.TimeUnit(req.Unit))
	if err != nil {
		h.fail(w, r, "advance time", err)
		return
	}
	Success(w, r, http.StatusOK, "Time advanced", report)
}

func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Career", h.game.Career())
}

func (h *Handler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !h.decode(w, r, &req) {
		return
	}
	var level *career.Level
	if req.Level != "" {
		l := career.Level(req.Level)
		level = &l
	}
	listings, err := h.game.SearchJobs(level)
	if err != nil {
		h.fail(w, r, "search jobs", err)
		return
	}
	Success(w, r, http.StatusOK, "Job listings", listings)
}

func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Job listings", h.game.Listings())
}

func (h *Handler) ApplyForJob(w http.ResponseWriter, r *http.Request) {
	app, err := h.game.ApplyForJob(chi.URLParam(r, "listingID"))
	if err != nil {
		h.fail(w, r, "apply for job", err)
		return
	}
	Success(w, r, http.StatusCreated, "Application sent", app)
}

func (h *Handler) ResolveApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.game.ResolveApplication(chi.URLParam(r, "applicationID"))
	if err != nil {
		h.fail(w, r, "resolve application", err)
		return
	}
	Success(w, r, http.StatusOK, "Application screened", app)
}

func (h *Handler) ResolveInterview(w http.ResponseWriter, r *http.Request) {
	iv, err := h.game.ResolveInterview(chi.URLParam(r, "interviewID"))
	if err != nil {
		h.fail(w, r, "resolve interview", err)
		return
	}
	Success(w, r, http.StatusOK, "Interview held", iv)
}

func (h *Handler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	job, err := h.game.AcceptOffer(chi.URLParam(r, "applicationID"))
	if err != nil {
		h.fail(w, r, "accept offer", err)
		return
	}
	Success(w, r, http.StatusOK, "Offer accepted", job)
}

func (h *Handler) DeclineOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.game.DeclineOffer(chi.URLParam(r, "applicationID")); err != nil {
		h.fail(w, r, "decline offer", err)
		return
	}
	Success(w, r, http.StatusOK, "Offer declined", nil)
}

func (h *Handler) LeaveJob(w http.ResponseWriter, r *http.Request) {
	var req LeaveRequest
	if !h.decode(w, r, &req) {
		return
	}
	job, err := h.game.LeaveJob(req.Reason)
	if err != nil {
		h.fail(w, r, "leave job", err)
		return
	}
	Success(w, r, http.StatusOK, "Left job", job)
}

func (h *Handler) GetVitals(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Vitals", h.game.Vitals())
}

func (h *Handler) CurrentEvent(w http.ResponseWriter, r *http.Request) {
	event := h.game.CurrentEvent()
	if event == nil {
		Success(w, r, http.StatusOK, "No event pending", nil)
		return
	}
	Success(w, r, http.StatusOK, event.Title, event)
}

func (h *Handler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	var req ChoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	outcome, err := h.game.CompleteEvent(req.Choice)
	if err != nil {
		h.fail(w, r, "resolve event", err)
		return
	}
	Success(w, r, http.StatusOK, outcome.Description, outcome)
}

func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Resume", h.game.Resume())
}

func (h *Handler) CompleteProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !h.decode(w, r, &req) {
		return
	}
	project, err := h.game.CompleteProject(req.Name, req.Description, req.Technologies)
	if err != nil {
		h.fail(w, r, "complete project", err)
		return
	}
	Success(w, r, http.StatusCreated, "Project added", project)
}

func (h *Handler) EarnCertification(w http.ResponseWriter, r *http.Request) {
	var req CertificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	cert, err := h.game.EarnCertification(req.ID)
	if err != nil {
		h.fail(w, r, "earn certification", err)
		return
	}
	Success(w, r, http.StatusCreated, "Certification earned", cert)
}

func (h *Handler) GetMinigames(w http.ResponseWriter, r *http.Request) {
	Success(w, r, http.StatusOK, "Minigames", map[string]any{
		"active":  h.game.ActiveMinigame(),
		"tracker": h.game.Minigames(),
	})
}

func (h *Handler) StartMinigame(w http.ResponseWriter, r *http.Request) {
	var req StartMinigameRequest
	if !h.decode(w, r, &req) {
		return
	}
	session, err := h.game.StartMinigame(minigame.Kind(req.Kind), minigame.Difficulty(req.Difficulty))
	if err != nil {
		h.fail(w, r, "start minigame", err)
		return
	}
	Success(w, r, http.StatusCreated, "Minigame started", session)
}

func (h *Handler) TapSequential(w http.ResponseWriter, r *http.Request) {
	var req TapRequest
	if !h.decode(w, r, &req) {
		return
	}
	ok, err := h.game.TapSequential(req.N)
	if err != nil {
		h.fail(w, r, "tap tile", err)
		return
	}
	Success(w, r, http.StatusOK, "Tile tapped", map[string]any{
		"accepted": ok,
		"session":  h.game.ActiveMinigame(),
	})
}

func (h *Handler) FinishMinigame(w http.ResponseWriter, r *http.Request) {
	var req FinishMinigameRequest
	if !h.decode(w, r, &req) {
		return
	}
	record, err := h.game.FinishMinigame(minigame.Result{
		Moves:    req.Moves,
		Correct:  req.Correct,
		Total:    req.Total,
		Duration: time.Duration(req.DurationMS) * time.Millisecond,
	})
	if err != nil {
		h.fail(w, r, "finish minigame", err)
		return
	}
	Success(w, r, http.StatusOK, "Minigame finished", record)
}

func (h *Handler) AbandonMinigame(w http.ResponseWriter, r *http.Request) {
	var req AbandonMinigameRequest
	if !h.decode(w, r, &req) {
		return
	}
	record, err := h.game.AbandonMinigame(time.Duration(req.DurationMS) * time.Millisecond)
	if err != nil {
		h.fail(w, r, "abandon minigame", err)
		return
	}
	Success(w, r, http.StatusOK, "Minigame abandoned", record)
}

func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	h.game.Reset()
	Success(w, r, http.StatusOK, "New game started", h.game.Status())
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	save, err := h.game.Snapshot()
	if err != nil {
		h.fail(w, r, "snapshot game", err)
		return
	}
	Success(w, r, http.StatusOK, "Snapshot", save)
}

func (h *Handler) ListSaves(w http.ResponseWriter, r *http.Request) {
	slots, err := h.game.Slots(r.Context())
	if err != nil {
		h.fail(w, r, "list saves", err)
		return
	}
	Success(w, r, http.StatusOK, "Saves", slots)
}

func (h *Handler) SaveGame(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if err := h.game.Save(r.Context(), slot); err != nil {
		h.fail(w, r, "save game", err)
		return
	}
	Success(w, r, http.StatusOK, "Game saved", map[string]string{"slot": slot})
}

func (h *Handler) LoadGame(w http.ResponseWriter, r *http.Request) {
	if err := h.game.Load(r.Context(), chi.URLParam(r, "slot")); err != nil {
		h.fail(w, r, "load game", err)
		return
	}
	Success(w, r, http.StatusOK, "Game loaded", h.game.Status())
}
