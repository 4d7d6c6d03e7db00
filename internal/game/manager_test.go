package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/career-path/config"
	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/education"
	"github.com/user/career-path/internal/minigame"
	"github.com/user/career-path/internal/types"
)

// testConfig is the default config with a fixed seed and no random events
func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Game.Seed = 42
	cfg.Game.DailyEventChance = 0
	cfg.Game.SemesterEventChance = 0
	return cfg
}

func newTestManager(t *testing.T, mutate func(*config.Config)) *GameManager {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewGameManager(cfg, content.MustDefault(), nil)
}

func createCharacter(t *testing.T, gm *GameManager, gender character.Gender) {
	t.Helper()
	require.True(t, gm.SetIdentity("Aysel Mammadova", gender, character.BackgroundMiddle, "Ganja"))
	require.True(t, gm.SetSkill(character.Programming, 4))
	require.True(t, gm.SetSkill(character.English, 3))
	require.NoError(t, gm.FinalizeCharacter())
}

func enroll(t *testing.T, gm *GameManager) {
	t.Helper()
	require.NoError(t, gm.Enroll("ada", "computer_science"))
}

// graduate runs every semester to the end of university
func graduate(t *testing.T, gm *GameManager) AdvanceReport {
	t.Helper()
	var last AdvanceReport
	for gm.Stage() == StageEducation {
		report, err := gm.AdvanceTime(UnitSemester)
		require.NoError(t, err)
		last = report
	}
	return last
}

// startCareer brings a fresh game to the career stage with no military service
func startCareer(t *testing.T, mutate func(*config.Config)) *GameManager {
	t.Helper()
	gm := newTestManager(t, func(c *config.Config) {
		c.Game.MilitaryEligibility = "none"
		if mutate != nil {
			mutate(c)
		}
	})
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)
	graduate(t, gm)
	require.Equal(t, StageCareer, gm.Stage())
	return gm
}

func TestNewGameStartsInCharacterCreation(t *testing.T) {
	gm := newTestManager(t, nil)

	assert.NotEmpty(t, gm.ID())
	assert.Equal(t, StageCharacterCreation, gm.Stage())
	assert.False(t, gm.Character().IsCreated)
	assert.Nil(t, gm.CurrentEvent())

	_, err := gm.AdvanceTime(UnitDay)
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestFinalizeCharacterChecksBudget(t *testing.T) {
	gm := newTestManager(t, nil)

	// no name yet
	assert.ErrorIs(t, gm.FinalizeCharacter(), character.ErrMissingName)

	require.True(t, gm.SetIdentity("Rauf", character.GenderMale, character.BackgroundLower, "Sumqayit"))
	for _, key := range character.Attributes {
		require.True(t, gm.SetAttribute(key, 10))
	}
	err := gm.FinalizeCharacter()
	assert.ErrorIs(t, err, character.ErrAttributeBudget)
	assert.Equal(t, StageCharacterCreation, gm.Stage())

	for _, key := range character.Attributes {
		require.True(t, gm.SetAttribute(key, 5))
	}
	require.NoError(t, gm.FinalizeCharacter())
	assert.Equal(t, StageEducation, gm.Stage())
	assert.True(t, gm.Character().IsCreated)

	// creation setters are closed from now on
	assert.False(t, gm.SetIdentity("Other", character.GenderMale, character.BackgroundLower, "Baku"))
	assert.False(t, gm.SetSkill(character.Programming, 5))
	assert.ErrorIs(t, gm.FinalizeCharacter(), ErrWrongStage)
}

func TestSetPointsIsAllOrNothing(t *testing.T) {
	gm := newTestManager(t, nil)

	rejected := gm.SetPoints(PointsAttributes, map[string]int{"intelligence": 8, "luck": 5, "charisma": 11})
	assert.Equal(t, []string{"charisma", "luck"}, rejected)
	assert.Equal(t, 5, gm.Character().Attributes[character.Intelligence])

	assert.Empty(t, gm.SetPoints(PointsAttributes, map[string]int{"intelligence": 8, "charisma": 3}))
	assert.Equal(t, 8, gm.Character().Attributes[character.Intelligence])
	assert.Equal(t, 3, gm.Character().Attributes[character.Charisma])

	assert.Equal(t, []string{"azerbaijani"}, gm.SetPoints(PointsSkills, map[string]int{"programming": 3, "azerbaijani": 4}))
	assert.Equal(t, 1.0, gm.Character().Skills[character.Programming])

	assert.Empty(t, gm.SetPoints(PointsConnections, map[string]int{"industry": 2}))
	assert.Equal(t, 2, gm.Character().Connections[character.Industry])
}

func TestSetIdentityRejectsUnknownGender(t *testing.T) {
	gm := newTestManager(t, nil)
	assert.False(t, gm.SetIdentity("Kamran", character.Gender("other"), character.BackgroundMiddle, "Baku"))
	assert.Empty(t, gm.Character().Name)
}

func TestEnrollValidatesUniversityAndProgram(t *testing.T) {
	gm := newTestManager(t, nil)
	assert.ErrorIs(t, gm.Enroll("ada", "computer_science"), ErrWrongStage)

	createCharacter(t, gm, character.GenderFemale)
	assert.ErrorIs(t, gm.Enroll("oxford", "computer_science"), ErrUnknownUniversity)
	assert.ErrorIs(t, gm.Enroll("ada", "information_technology"), ErrUnknownProgram)
	assert.ErrorIs(t, gm.Enroll("ada", "astrology"), ErrUnknownProgram)

	_, err := gm.AdvanceTime(UnitWeek)
	assert.ErrorIs(t, err, ErrNotEnrolled)
	assert.ErrorIs(t, gm.SelectCourses([]string{"cs101"}), ErrNotEnrolled)

	enroll(t, gm)
	assert.Equal(t, "ada", gm.Education().UniversityID)
	assert.Equal(t, "ADA University", gm.Resume().Education.University)

	// switching is allowed until the first semester is over
	require.NoError(t, gm.Enroll("bsu", "computer_science"))
	_, err = gm.AdvanceTime(UnitSemester)
	require.NoError(t, err)
	assert.ErrorIs(t, gm.Enroll("ada", "computer_science"), ErrWrongStage)
}

func TestSemesterCoursesAndGrades(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	courses := gm.AvailableCourses()
	require.NotEmpty(t, courses)
	for _, c := range courses {
		assert.Equal(t, 1, c.Semester)
	}

	assert.ErrorIs(t, gm.SelectCourses([]string{"cs101", "math101", "phys101", "eng101", "hist101"}), education.ErrTooManyCourses)
	require.NoError(t, gm.SelectCourses([]string{"cs101", "math101"}))
	assert.Len(t, gm.Education().SelectedCourses, 2)

	assert.False(t, gm.AllocateTime(map[education.Activity]int{education.Study: 11}))
	assert.True(t, gm.AllocateTime(map[education.Activity]int{education.Study: 6, education.Networking: 4}))

	require.NoError(t, gm.CompleteCourse("cs101", education.GradeA))
	assert.Equal(t, 4.0, gm.Education().GPA)
	assert.ErrorIs(t, gm.CompleteCourse("cs101", education.Grade("Z")), education.ErrInvalidGrade)
	assert.ErrorIs(t, gm.CompleteCourse("cs999", education.GradeA), education.ErrUnknownCourse)

	report, err := gm.AdvanceTime(UnitSemester)
	require.NoError(t, err)
	assert.Equal(t, 120, report.Days)
	require.Len(t, report.Semesters, 1)
	assert.Equal(t, 1, report.Semesters[0].Semester)
	assert.False(t, report.StageChanged)

	st := gm.Education()
	assert.Equal(t, 2, st.Semester)
	assert.Contains(t, st.CourseGrades, "math101")
	assert.Equal(t, education.GradeA, st.CourseGrades["cs101"])
	assert.Empty(t, st.SelectedCourses)
	assert.Len(t, gm.Resume().Education.Courses, 2)
}

func TestSemesterAdvanceStopsAtSemesterEnd(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	_, err := gm.AdvanceTime(UnitMonth)
	require.NoError(t, err)

	report, err := gm.AdvanceTime(UnitSemester)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Days)
	assert.Len(t, report.Semesters, 1)

	_, err = gm.AdvanceTime(TimeUnit("fortnight"))
	assert.ErrorIs(t, err, ErrUnknownTimeUnit)
}

func TestGraduationLeadsToCareerWhenNotEligible(t *testing.T) {
	gm := newTestManager(t, func(c *config.Config) { c.Game.MilitaryEligibility = "none" })
	createCharacter(t, gm, character.GenderMale)
	enroll(t, gm)

	report := graduate(t, gm)
	assert.True(t, report.StageChanged)
	assert.Equal(t, StageCareer, report.Stage)
	require.NotEmpty(t, report.Semesters)
	assert.True(t, report.Semesters[len(report.Semesters)-1].Graduated)

	assert.True(t, gm.Education().Graduated)
	assert.Nil(t, gm.Career().MilitaryService)
	assert.Equal(t, 8, gm.Resume().Education.SemestersCompleted)
}

func TestMilitaryServiceAfterGraduation(t *testing.T) {
	gm := newTestManager(t, func(c *config.Config) {
		c.Game.MilitaryEligibility = "all"
		c.Game.MilitaryMonths = 2
	})
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	graduate(t, gm)
	require.Equal(t, StageMilitary, gm.Stage())
	service := gm.Career().MilitaryService
	require.NotNil(t, service)
	assert.Equal(t, 2, service.DurationMonths)

	report, err := gm.AdvanceTime(UnitMonth)
	require.NoError(t, err)
	assert.Len(t, report.ServiceTicks, 1)
	assert.Equal(t, StageMilitary, gm.Stage())

	report, err = gm.AdvanceTime(UnitMonth)
	require.NoError(t, err)
	assert.True(t, report.StageChanged)
	assert.Equal(t, StageCareer, gm.Stage())

	service = gm.Career().MilitaryService
	require.NotNil(t, service)
	assert.True(t, service.Completed)
	assert.NotEmpty(t, service.Rank)
	require.NotNil(t, gm.Resume().Additional.Military)
	assert.True(t, gm.Resume().Additional.Military.Completed)
}

func TestMilitaryEligibilityByGender(t *testing.T) {
	tests := []struct {
		gender character.Gender
		want   Stage
	}{
		{character.GenderMale, StageMilitary},
		{character.GenderFemale, StageCareer},
	}
	for _, tt := range tests {
		t.Run(string(tt.gender), func(t *testing.T) {
			gm := newTestManager(t, nil)
			createCharacter(t, gm, tt.gender)
			enroll(t, gm)
			graduate(t, gm)
			assert.Equal(t, tt.want, gm.Stage())
		})
	}
}

// jobOffer applies for listings until one ends in an offer
func jobOffer(t *testing.T, gm *GameManager) career.Application {
	t.Helper()
	for attempt := 0; attempt < 40; attempt++ {
		listings, err := gm.SearchJobs(nil)
		require.NoError(t, err)
		require.NotEmpty(t, listings)

		app, err := gm.ApplyForJob(listings[0].ID)
		require.NoError(t, err)
		app, err = gm.ResolveApplication(app.ID)
		require.NoError(t, err)

		for app.Status == career.StatusInterview {
			var pending *career.Interview
			for _, iv := range gm.Career().Interviews {
				if iv.ApplicationID == app.ID && !iv.Completed {
					pending = &iv
					break
				}
			}
			require.NotNil(t, pending)
			_, err := gm.ResolveInterview(pending.ID)
			require.NoError(t, err)
			app, _ = gm.career.Application(app.ID)
		}
		if app.Status == career.StatusOffer {
			return app
		}
		assert.Equal(t, career.StatusRejected, app.Status)
	}
	t.Fatal("no offer after 40 applications")
	return career.Application{}
}

func TestJobPipelineToEmployment(t *testing.T) {
	gm := startCareer(t, nil)

	_, err := gm.ApplyForJob("missing")
	assert.ErrorIs(t, err, ErrListingNotFound)

	offer := jobOffer(t, gm)
	assert.Positive(t, offer.SalaryOffered)

	job, err := gm.AcceptOffer(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.Company, job.Company)

	current := gm.Career().CurrentJob
	require.NotNil(t, current)
	assert.Equal(t, offer.Position, current.Position)
	assert.Positive(t, gm.Vitals().Stats.JobsApplied)
	assert.Equal(t, 1, gm.Vitals().Stats.JobsAccepted)

	report, err := gm.AdvanceTime(UnitMonth)
	require.NoError(t, err)
	assert.Equal(t, gm.Career().Salary, report.SalaryPaid)
	assert.Equal(t, report.SalaryPaid, gm.Vitals().Stats.TotalSalaryEarned)

	status := gm.Status()
	assert.Equal(t, job.Company, status.Company)
	assert.Contains(t, status.Summary(), job.Company)

	left, err := gm.LeaveJob("moving abroad")
	require.NoError(t, err)
	assert.Equal(t, job.Company, left.Company)
	assert.Nil(t, gm.Career().CurrentJob)
	_, err = gm.LeaveJob("again")
	assert.ErrorIs(t, err, career.ErrNoCurrentJob)

	// no job, no pay
	report, err = gm.AdvanceTime(UnitMonth)
	require.NoError(t, err)
	assert.Zero(t, report.SalaryPaid)
}

func TestDeclineOffer(t *testing.T) {
	gm := startCareer(t, nil)
	offer := jobOffer(t, gm)

	require.NoError(t, gm.DeclineOffer(offer.ID))
	app, ok := gm.career.Application(offer.ID)
	require.True(t, ok)
	assert.Equal(t, career.StatusRejected, app.Status)

	assert.ErrorIs(t, gm.DeclineOffer(offer.ID), career.ErrInvalidTransition)
	_, err := gm.AcceptOffer(offer.ID)
	assert.Error(t, err)
}

func TestApplicationsResolveWithTime(t *testing.T) {
	gm := startCareer(t, nil)

	listings, err := gm.SearchJobs(nil)
	require.NoError(t, err)
	app, err := gm.ApplyForJob(listings[0].ID)
	require.NoError(t, err)
	assert.Len(t, gm.Listings(), len(listings)-1)

	report, err := gm.AdvanceTime(UnitDay)
	require.NoError(t, err)
	assert.Empty(t, report.Applications)

	report, err = gm.AdvanceTime(UnitWeek)
	require.NoError(t, err)
	require.Len(t, report.Applications, 1)
	assert.Equal(t, app.ID, report.Applications[0].ID)
	assert.NotEqual(t, career.StatusApplied, report.Applications[0].Status)

	_, err = gm.ResolveApplication(app.ID)
	assert.ErrorIs(t, err, career.ErrInvalidTransition)
}

func TestSearchJobsForLevel(t *testing.T) {
	gm := startCareer(t, nil)
	level := career.LevelEntry

	listings, err := gm.SearchJobs(&level)
	require.NoError(t, err)
	assert.Len(t, listings, testConfig().Game.ListingsPerSearch)
	for _, l := range listings {
		assert.Equal(t, career.LevelEntry, l.Level)
	}
}

func TestCareerActionsRequireCareerStage(t *testing.T) {
	gm := newTestManager(t, nil)

	_, err := gm.SearchJobs(nil)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = gm.ApplyForJob("x")
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = gm.AcceptOffer("x")
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = gm.LeaveJob("x")
	assert.ErrorIs(t, err, ErrWrongStage)
}

func lifeEventTables() *content.Tables {
	tables := *content.MustDefault()
	tables.LifeEvents = []types.Event{{
		ID:          "lottery",
		Title:       "Lottery Ticket",
		Description: "A neighbour sells you a lottery ticket.",
		Category:    "life",
		Options: []types.EventOption{
			{Text: "Celebrate the small win", Effects: []types.Effect{
				types.Scalar(types.FieldSatisfaction, 10),
				types.Nested(types.CategoryConnections, string(character.Entrepreneurial), 1),
			}},
			{Text: "Ignore it", Effects: []types.Effect{types.Scalar(types.FieldSatisfaction, -5)}},
		},
	}}
	return &tables
}

func TestLifeEventRoutesEffects(t *testing.T) {
	cfg := testConfig()
	cfg.Game.DailyEventChance = 1
	gm := NewGameManager(cfg, lifeEventTables(), nil)
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	_, err := gm.CompleteEvent(0)
	assert.ErrorIs(t, err, ErrNoEvent)

	report, err := gm.AdvanceTime(UnitDay)
	require.NoError(t, err)
	require.NotNil(t, report.TriggeredEvent)
	assert.Equal(t, "lottery", report.TriggeredEvent.ID)
	assert.Equal(t, sourceLife, report.TriggeredEvent.Source)

	view := gm.CurrentEvent()
	require.NotNil(t, view)
	assert.Equal(t, []string{"Celebrate the small win", "Ignore it"}, view.Options)
	assert.True(t, gm.Status().PendingEvent)

	_, err = gm.CompleteEvent(5)
	assert.ErrorIs(t, err, ErrInvalidOption)

	before := gm.Vitals().Satisfaction
	outcome, err := gm.CompleteEvent(0)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePositive, outcome.Type)
	assert.Equal(t, before+10, gm.Vitals().Satisfaction)
	assert.Equal(t, 1, gm.Character().Connections[character.Entrepreneurial])
	assert.Equal(t, 1, gm.Vitals().Stats.EventsExperienced)
	assert.Nil(t, gm.CurrentEvent())
}

func TestEducationEventAfterSemester(t *testing.T) {
	gm := newTestManager(t, func(c *config.Config) { c.Game.SemesterEventChance = 1 })
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	report, err := gm.AdvanceTime(UnitSemester)
	require.NoError(t, err)
	require.NotNil(t, report.TriggeredEvent)
	assert.Equal(t, sourceEducation, report.TriggeredEvent.Source)

	view := gm.CurrentEvent()
	require.NotNil(t, view)
	assert.Equal(t, report.TriggeredEvent.ID, view.ID)

	_, err = gm.HandleEducationEvent(99)
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = gm.HandleEducationEvent(0)
	require.NoError(t, err)
	assert.Nil(t, gm.CurrentEvent())
	assert.Equal(t, 1, gm.Vitals().Stats.EventsExperienced)

	_, err = gm.HandleEducationEvent(0)
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestCompleteProject(t *testing.T) {
	gm := newTestManager(t, nil)
	_, err := gm.CompleteProject("Bot", "", nil)
	assert.ErrorIs(t, err, ErrWrongStage)

	createCharacter(t, gm, character.GenderFemale)
	_, err = gm.CompleteProject("   ", "", nil)
	assert.ErrorIs(t, err, ErrMissingProjectName)

	before := gm.Character().Skills[character.Programming]
	project, err := gm.CompleteProject("Metro Tracker", "Live Baku metro arrivals", []string{"go", "postgres"})
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)

	assert.InDelta(t, before+projectSkillGain, gm.Character().Skills[character.Programming], 1e-9)
	assert.Equal(t, 1, gm.Vitals().Stats.ProjectsCompleted)
	require.Len(t, gm.Resume().Projects, 1)
	assert.Equal(t, "Metro Tracker", gm.Resume().Projects[0].Name)
}

func TestEarnCertificationOnce(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)

	_, err := gm.EarnCertification("nope")
	assert.ErrorIs(t, err, ErrUnknownCertification)

	cert, err := gm.EarnCertification("ielts")
	require.NoError(t, err)
	again, err := gm.EarnCertification("ielts")
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)

	assert.Len(t, gm.Resume().Additional.Certifications, 1)
	assert.Equal(t, 1, gm.Vitals().Stats.SkillsLearned)
}

func TestSequentialMinigame(t *testing.T) {
	gm := newTestManager(t, nil)

	_, err := gm.FinishMinigame(minigame.Result{})
	assert.ErrorIs(t, err, ErrNoMinigame)

	session, err := gm.StartMinigame(minigame.KindSequential, minigame.Easy)
	require.NoError(t, err)
	require.NotNil(t, session.Sequential)
	_, err = gm.StartMinigame(minigame.KindMemory, minigame.Easy)
	assert.ErrorIs(t, err, ErrMinigameActive)

	_, err = gm.FinishMinigame(minigame.Result{})
	assert.ErrorIs(t, err, minigame.ErrIncomplete)

	ok, err := gm.TapSequential(2)
	require.NoError(t, err)
	assert.False(t, ok)
	for n := 1; n <= len(session.Sequential.Tiles); n++ {
		ok, err := gm.TapSequential(n)
		require.NoError(t, err)
		require.True(t, ok)
	}
	// the returned session is a copy
	assert.Equal(t, 1, session.Sequential.Next)

	before := gm.Character().Skills[character.ProblemSolving]
	record, err := gm.FinishMinigame(minigame.Result{Duration: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 950, record.Score)
	assert.True(t, record.HighScore)
	assert.Nil(t, gm.ActiveMinigame())
	assert.InDelta(t, before+minigameSkillGain, gm.Character().Skills[character.ProblemSolving], 1e-9)
	assert.Equal(t, 950, gm.Minigames().HighScores[minigame.KindSequential])
}

func TestFinishMinigameScoresAgainstBoard(t *testing.T) {
	gm := newTestManager(t, nil)

	_, err := gm.StartMinigame(minigame.KindLogic, minigame.Hard)
	require.NoError(t, err)
	record, err := gm.FinishMinigame(minigame.Result{Correct: 1, Total: 1})
	require.NoError(t, err)
	// one of seven puzzles
	assert.Equal(t, 143, record.Score)

	skill := minigameSkills[minigame.KindMemory]
	before := gm.Character().Skills[skill]
	_, err = gm.StartMinigame(minigame.KindMemory, minigame.Hard)
	require.NoError(t, err)
	record, err = gm.FinishMinigame(minigame.Result{})
	require.NoError(t, err)
	// twelve pairs take at least twelve moves
	assert.Equal(t, 880, record.Score)
	assert.Equal(t, 880, gm.Minigames().HighScores[minigame.KindMemory])
	assert.InDelta(t, before+minigameSkillGain, gm.Character().Skills[skill], 1e-9)
}

func TestAbandonMinigame(t *testing.T) {
	gm := newTestManager(t, nil)

	_, err := gm.AbandonMinigame(0)
	assert.ErrorIs(t, err, ErrNoMinigame)

	_, err = gm.StartMinigame(minigame.KindLogic, minigame.Hard)
	require.NoError(t, err)
	record, err := gm.AbandonMinigame(0)
	require.NoError(t, err)
	assert.Equal(t, minigame.OutcomeAbandoned, record.Outcome)
	assert.Nil(t, gm.ActiveMinigame())
	assert.Len(t, gm.Minigames().History, 1)

	_, err = gm.StartMinigame(minigame.Kind("chess"), minigame.Easy)
	assert.ErrorIs(t, err, minigame.ErrUnknownKind)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)
	require.NoError(t, gm.SelectCourses([]string{"cs101"}))
	require.NoError(t, gm.CompleteCourse("cs101", education.GradeB))
	_, err := gm.AdvanceTime(UnitWeek)
	require.NoError(t, err)
	_, err = gm.StartMinigame(minigame.KindFocus, minigame.Medium)
	require.NoError(t, err)

	save, err := gm.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, SaveVersion, save.Version)
	assert.Equal(t, gm.ID(), save.ID)

	other := newTestManager(t, nil)
	require.NoError(t, other.Restore(save))

	assert.Equal(t, gm.ID(), other.ID())
	assert.Equal(t, StageEducation, other.Stage())
	assert.Equal(t, gm.Character(), other.Character())
	assert.Equal(t, gm.Education().CourseGrades, other.Education().CourseGrades)
	assert.Equal(t, gm.Vitals().CurrentDate, other.Vitals().CurrentDate)
	assert.Equal(t, gm.Resume().QualityScore, other.Resume().QualityScore)
	require.NotNil(t, other.ActiveMinigame())
	assert.Equal(t, minigame.KindFocus, other.ActiveMinigame().Kind)

	// progress toward the semester end survives too
	report, err := other.AdvanceTime(UnitSemester)
	require.NoError(t, err)
	assert.Equal(t, 113, report.Days)
}

func TestRestoreKeepsGameOnError(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	id := gm.ID()

	save, err := gm.Snapshot()
	require.NoError(t, err)
	save.ID = "broken"
	save.Career = []byte(`{"careerLevel":`)

	assert.Error(t, gm.Restore(save))
	assert.Equal(t, id, gm.ID())
	assert.Equal(t, StageEducation, gm.Stage())
	assert.Equal(t, "Aysel Mammadova", gm.Character().Name)
}

func TestResetStartsNewGame(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	id := gm.ID()

	gm.Reset()
	assert.NotEqual(t, id, gm.ID())
	assert.Equal(t, StageCharacterCreation, gm.Stage())
	assert.Empty(t, gm.Character().Name)
}

func TestSaveAndLoadNeedStorage(t *testing.T) {
	gm := newTestManager(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, gm.Save(ctx, "slot1"), ErrNoStorage)
	assert.ErrorIs(t, gm.Load(ctx, "slot1"), ErrNoStorage)
	_, err := gm.Slots(ctx)
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestSaveAndLoadThroughStorage(t *testing.T) {
	storages := map[string]func(t *testing.T) Storage{
		"file": func(t *testing.T) Storage {
			s, err := NewFileStorage(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"sqlite3": func(t *testing.T) Storage {
			s, err := OpenSQLiteStorage(t.TempDir() + "/saves.db")
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range storages {
		t.Run(name, func(t *testing.T) {
			storage := open(t)
			defer storage.Close()
			ctx := context.Background()

			gm := NewGameManager(testConfig(), content.MustDefault(), storage)
			createCharacter(t, gm, character.GenderFemale)
			require.NoError(t, gm.Save(ctx, "main"))

			fresh := NewGameManager(testConfig(), content.MustDefault(), storage)
			err := fresh.Load(ctx, "missing")
			assert.True(t, errors.Is(err, ErrSlotNotFound))

			require.NoError(t, fresh.Load(ctx, "main"))
			assert.Equal(t, gm.ID(), fresh.ID())
			assert.Equal(t, "Aysel Mammadova", fresh.Character().Name)

			slots, err := fresh.Slots(ctx)
			require.NoError(t, err)
			require.Len(t, slots, 1)
			assert.Equal(t, "main", slots[0].Slot)
			assert.Equal(t, StageEducation, slots[0].Stage)
		})
	}
}

func TestStatusSummary(t *testing.T) {
	gm := newTestManager(t, nil)
	createCharacter(t, gm, character.GenderFemale)
	enroll(t, gm)

	status := gm.Status()
	assert.Equal(t, "ADA University", status.University)
	assert.Equal(t, 1, status.Semester)

	summary := status.Summary()
	assert.Contains(t, summary, "Aysel Mammadova, education, 1 Sep 2025")
	assert.Contains(t, summary, "1st semester at ADA University")
	assert.NotContains(t, summary, "waiting for a decision")
}
