package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/vitals"
)

// days an employer takes to screen an application, and between interview stages
const (
	screeningDays     = 7
	interviewGapDays  = 5
	applicationEnergy = -5
	interviewStress   = 3
	offerSatisfaction = 10
	leaveSatisfaction = -5
)

// SearchJobs generates fresh listings, optionally for one level, and keeps
// them until the next search.
func (gm *GameManager) SearchJobs(level *career.Level) ([]career.JobListing, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return nil, err
	}
	gm.listings = gm.career.GenerateJobListings(gm.config.Game.ListingsPerSearch, level)
	return append([]career.JobListing{}, gm.listings...), nil
}

// Listings returns the results of the last search
func (gm *GameManager) Listings() []career.JobListing {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return append([]career.JobListing{}, gm.listings...)
}

// ApplyForJob applies to one of the current listings. The employer answers
// once the screening period has passed.
func (gm *GameManager) ApplyForJob(listingID string) (career.Application, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return career.Application{}, err
	}

	for i, listing := range gm.listings {
		if listing.ID != listingID {
			continue
		}
		app := gm.career.ApplyForJob(listing)
		gm.listings = append(gm.listings[:i:i], gm.listings[i+1:]...)
		gm.vitals.IncrementStat(vitals.StatJobsApplied, 1)
		gm.vitals.ModifyEnergy(applicationEnergy)

		gm.Logger.Info("Applied for job",
			zap.String("game_id", gm.id),
			zap.String("application_id", app.ID),
			zap.String("company", app.Company),
			zap.String("position", app.Position))
		return app, nil
	}
	return career.Application{}, fmt.Errorf("%w: %s", ErrListingNotFound, listingID)
}

// ResolveApplication screens an application right away instead of waiting
// for the screening period
func (gm *GameManager) ResolveApplication(applicationID string) (career.Application, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return career.Application{}, err
	}
	app, ok := gm.career.Application(applicationID)
	if !ok {
		return career.Application{}, fmt.Errorf("%w: %s", career.ErrApplicationNotFound, applicationID)
	}
	if app.Status != career.StatusApplied {
		return app, fmt.Errorf("%w: %s has already been screened", career.ErrInvalidTransition, applicationID)
	}
	if err := gm.screen(app); err != nil {
		return app, err
	}
	gm.resync()
	app, _ = gm.career.Application(applicationID)
	return app, nil
}

// ResolveInterview holds a scheduled interview right away
func (gm *GameManager) ResolveInterview(interviewID string) (career.Interview, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return career.Interview{}, err
	}
	iv, ok := gm.career.Interview(interviewID)
	if !ok {
		return career.Interview{}, fmt.Errorf("%w: %s", career.ErrInterviewNotFound, interviewID)
	}
	if iv.Completed {
		return iv, career.ErrInterviewCompleted
	}
	if err := gm.interview(iv); err != nil {
		return iv, err
	}
	gm.resync()
	iv, _ = gm.career.Interview(interviewID)
	return iv, nil
}

// screen rolls whether the employer invites the candidate to interview
func (gm *GameManager) screen(app career.Application) error {
	st := gm.career.State()
	p := career.ApplicationSuccessProbability(app.JobDetails, gm.character, gm.resume.QualityScore, st.CareerLevel, st.Reputation)
	invited := gm.dice.Chance(p)

	gm.Logger.Info("Application screened",
		zap.String("game_id", gm.id),
		zap.String("application_id", app.ID),
		zap.Float64("probability", p),
		zap.Bool("invited", invited))

	if !invited {
		return gm.career.UpdateApplicationStatus(app.ID, career.StatusRejected, nil)
	}
	_, err := gm.career.ScheduleInterview(app.ID, career.InterviewDetails{
		Date: gm.now().AddDate(0, 0, interviewGapDays),
	})
	return err
}

// interview rolls one stage and chains to the next stage or to an offer
func (gm *GameManager) interview(iv career.Interview) error {
	p := career.InterviewSuccessProbability(iv.Type, gm.character, gm.resume.QualityScore)
	passed := gm.dice.Chance(p)
	gm.vitals.ModifyStress(interviewStress)

	result := career.ResultFailed
	notes := fmt.Sprintf("%s interview did not go well", iv.Type)
	if passed {
		result = career.ResultPassed
		notes = fmt.Sprintf("%s interview went well", iv.Type)
	}
	if err := gm.career.CompleteInterview(iv.ID, result, notes); err != nil {
		return err
	}

	gm.Logger.Info("Interview held",
		zap.String("game_id", gm.id),
		zap.String("interview_id", iv.ID),
		zap.String("type", string(iv.Type)),
		zap.Float64("probability", p),
		zap.Bool("passed", passed))

	if !passed {
		return gm.career.UpdateApplicationStatus(iv.ApplicationID, career.StatusRejected, nil)
	}
	if _, more := gm.career.NextInterviewStage(iv.ApplicationID); more {
		_, err := gm.career.ScheduleInterview(iv.ApplicationID, career.InterviewDetails{
			Date: gm.now().AddDate(0, 0, interviewGapDays),
		})
		return err
	}

	app, _ := gm.career.Application(iv.ApplicationID)
	return gm.career.UpdateApplicationStatus(app.ID, career.StatusOffer, &career.OfferDetails{Salary: app.SalaryOffered})
}

// resolveDue screens applications whose screening period is over and holds
// interviews whose date has come. Interviews booked during this pass are
// dated in the future so they wait for a later advance.
func (gm *GameManager) resolveDue(report *AdvanceReport) {
	now := gm.now()
	st := gm.career.State()

	for _, app := range st.Applications {
		if app.Status != career.StatusApplied || app.DateApplied.AddDate(0, 0, screeningDays).After(now) {
			continue
		}
		if err := gm.screen(app); err != nil {
			gm.Logger.Error("Failed to screen application", zap.String("application_id", app.ID), zap.Error(err))
			continue
		}
		updated, _ := gm.career.Application(app.ID)
		report.Applications = append(report.Applications, updated)
	}

	for _, iv := range st.Interviews {
		if iv.Completed || iv.Date.After(now) {
			continue
		}
		if err := gm.interview(iv); err != nil {
			gm.Logger.Error("Failed to hold interview", zap.String("interview_id", iv.ID), zap.Error(err))
			continue
		}
		updated, _ := gm.career.Interview(iv.ID)
		report.Interviews = append(report.Interviews, updated)
	}
}

// AcceptOffer takes the job behind an offer, leaving any current job
func (gm *GameManager) AcceptOffer(applicationID string) (career.JobRecord, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return career.JobRecord{}, err
	}
	job, err := gm.career.AcceptJobOffer(applicationID, career.OfferDetails{})
	if err != nil {
		return career.JobRecord{}, err
	}

	gm.progress.PayDays = 0
	gm.vitals.IncrementStat(vitals.StatJobsAccepted, 1)
	gm.vitals.ModifySatisfaction(offerSatisfaction)
	gm.resync()

	gm.Logger.Info("Job offer accepted",
		zap.String("game_id", gm.id),
		zap.String("company", job.Company),
		zap.String("position", job.Position),
		zap.Float64("salary", job.Salary),
		zap.String("level", string(gm.career.CareerLevel())))
	return job, nil
}

// DeclineOffer turns an offer down
func (gm *GameManager) DeclineOffer(applicationID string) error {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return err
	}
	app, ok := gm.career.Application(applicationID)
	if !ok {
		return fmt.Errorf("%w: %s", career.ErrApplicationNotFound, applicationID)
	}
	if app.Status != career.StatusOffer {
		return fmt.Errorf("%w: %s is not an offer", career.ErrInvalidTransition, app.Status)
	}
	return gm.career.UpdateApplicationStatus(applicationID, career.StatusRejected, nil)
}

// LeaveJob quits the current job
func (gm *GameManager) LeaveJob(reason string) (career.JobRecord, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageCareer); err != nil {
		return career.JobRecord{}, err
	}
	job, err := gm.career.LeaveCurrentJob(reason)
	if err != nil {
		return career.JobRecord{}, err
	}
	gm.progress.PayDays = 0
	gm.vitals.ModifySatisfaction(leaveSatisfaction)
	gm.resync()

	gm.Logger.Info("Left job",
		zap.String("game_id", gm.id),
		zap.String("company", job.Company),
		zap.String("reason", reason))
	return job, nil
}
