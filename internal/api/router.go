// Package api exposes the game over HTTP as a JSON API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/career-path/internal/interfaces"
)

// Handler serves the game endpoints
type Handler struct {
	game     interfaces.GameManager
	logger   *zap.Logger
	validate *validator.Validate
}

// NewRouter builds the HTTP router over a game
func NewRouter(gm interfaces.GameManager, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{game: gm, logger: logger, validate: validator.New()}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/content", h.Content)

		r.Route("/character", func(r chi.Router) {
			r.Get("/", h.GetCharacter)
			r.Put("/identity", h.SetIdentity)
			r.Put("/attributes", h.SetAttributes)
			r.Put("/connections", h.SetConnections)
			r.Put("/skills", h.SetSkills)
			r.Post("/finalize", h.FinalizeCharacter)
		})

		r.Route("/education", func(r chi.Router) {
			r.Get("/", h.GetEducation)
			r.Post("/enroll", h.Enroll)
			r.Get("/courses", h.AvailableCourses)
			r.Put("/courses", h.SelectCourses)
			r.Post("/courses/{courseID}/grade", h.CompleteCourse)
			r.Put("/time", h.AllocateTime)
			r.Post("/event", h.HandleEducationEvent)
		})

		r.Post("/time/advance", h.AdvanceTime)

		r.Route("/career", func(r chi.Router) {
			r.Get("/", h.GetCareer)
			r.Post("/search", h.SearchJobs)
			r.Get("/listings", h.Listings)
			r.Post("/listings/{listingID}/apply", h.ApplyForJob)
			r.Post("/applications/{applicationID}/resolve", h.ResolveApplication)
			r.Post("/applications/{applicationID}/accept", h.AcceptOffer)
			r.Post("/applications/{applicationID}/decline", h.DeclineOffer)
			r.Post("/interviews/{interviewID}/resolve", h.ResolveInterview)
			r.Post("/leave", h.LeaveJob)
		})

		r.Get("/vitals", h.GetVitals)
		r.Get("/event", h.CurrentEvent)
		r.Post("/event", h.CompleteEvent)

		r.Route("/resume", func(r chi.Router) {
			r.Get("/", h.GetResume)
			r.Post("/projects", h.CompleteProject)
			r.Post("/certifications", h.EarnCertification)
		})

		r.Route("/minigames", func(r chi.Router) {
			r.Get("/", h.GetMinigames)
			r.Post("/", h.StartMinigame)
			r.Post("/tap", h.TapSequential)
			r.Post("/finish", h.FinishMinigame)
			r.Post("/abandon", h.AbandonMinigame)
		})

		r.Route("/game", func(r chi.Router) {
			r.Post("/reset", h.ResetGame)
			r.Get("/snapshot", h.Snapshot)
			r.Get("/saves", h.ListSaves)
			r.Post("/saves/{slot}", h.SaveGame)
			r.Post("/saves/{slot}/load", h.LoadGame)
		})
	})

	return router
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr))
		})
	}
}

// decode reads a JSON body into dst and validates it. An empty body decodes
// as an empty object. On failure it writes the error response and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		Error(w, r, http.StatusBadRequest, "Invalid request", err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		Error(w, r, http.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	return true
}

// fail writes the response for an error returned by the game
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(fmt.Sprintf("Failed to %s", action), zap.Error(err))
	}
	Error(w, r, code, fmt.Sprintf("Failed to %s", action), err.Error())
}
