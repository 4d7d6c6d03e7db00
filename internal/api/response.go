package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/education"
	"github.com/user/career-path/internal/game"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/vitals"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// Success sends a success response
func Success(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	writeJSON(w, code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// Error sends an error response
func Error(w http.ResponseWriter, r *http.Request, code int, message string, err any) {
	writeJSON(w, code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// status codes for domain errors; anything not listed is a server error
var errorStatus = []struct {
	err  error
	code int
}{
	{game.ErrUnknownUniversity, http.StatusNotFound},
	{game.ErrUnknownProgram, http.StatusNotFound},
	{game.ErrListingNotFound, http.StatusNotFound},
	{game.ErrUnknownCertification, http.StatusNotFound},
	{game.ErrSlotNotFound, http.StatusNotFound},
	{career.ErrApplicationNotFound, http.StatusNotFound},
	{career.ErrInterviewNotFound, http.StatusNotFound},

	{game.ErrWrongStage, http.StatusConflict},
	{game.ErrNotEnrolled, http.StatusConflict},
	{game.ErrNoEvent, http.StatusConflict},
	{game.ErrMinigameActive, http.StatusConflict},
	{game.ErrNoMinigame, http.StatusConflict},
	{minigame.ErrIncomplete, http.StatusConflict},
	{career.ErrInvalidTransition, http.StatusConflict},
	{career.ErrInterviewOutOfOrder, http.StatusConflict},
	{career.ErrInterviewPending, http.StatusConflict},
	{career.ErrInterviewCompleted, http.StatusConflict},
	{career.ErrNoCurrentJob, http.StatusConflict},
	{career.ErrMilitaryStarted, http.StatusConflict},
	{career.ErrNoMilitaryService, http.StatusConflict},
	{career.ErrServiceCompleted, http.StatusConflict},
	{education.ErrGraduated, http.StatusConflict},
	{vitals.ErrNoActiveEvent, http.StatusConflict},

	{character.ErrAttributeBudget, http.StatusUnprocessableEntity},
	{character.ErrSkillBudget, http.StatusUnprocessableEntity},
	{character.ErrConnectionBudget, http.StatusUnprocessableEntity},
	{character.ErrMissingName, http.StatusUnprocessableEntity},
	{education.ErrUnknownCourse, http.StatusUnprocessableEntity},
	{education.ErrInvalidGrade, http.StatusUnprocessableEntity},
	{education.ErrTooManyCourses, http.StatusUnprocessableEntity},
	{game.ErrInvalidOption, http.StatusUnprocessableEntity},
	{game.ErrUnknownTimeUnit, http.StatusUnprocessableEntity},
	{game.ErrMissingProjectName, http.StatusUnprocessableEntity},
	{game.ErrInvalidSlot, http.StatusUnprocessableEntity},
	{minigame.ErrUnknownKind, http.StatusUnprocessableEntity},
	{minigame.ErrUnknownDifficulty, http.StatusUnprocessableEntity},
	{vitals.ErrInvalidChoice, http.StatusUnprocessableEntity},

	{game.ErrNoStorage, http.StatusServiceUnavailable},
}

// StatusFor maps an error from the game to an HTTP status code
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}
