package game

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/character"
	"github.com/user/career-path/internal/education"
)

// skill growth at university carries over to the character at this rate
const educationSkillTransfer = 0.1

// grade thresholds for courses the player never graded by hand
var autoGrades = []struct {
	min   float64
	grade education.Grade
}{
	{5, education.GradeA},
	{4, education.GradeB},
	{3, education.GradeC},
	{2, education.GradeD},
}

// days returns how many days unit spans. A semester in the education stage
// runs to the end of the current one.
func (gm *GameManager) days(unit TimeUnit) (int, error) {
	switch unit {
	case UnitDay:
		return 1, nil
	case UnitWeek:
		return 7, nil
	case UnitMonth:
		return daysPerMonth, nil
	case UnitSemester:
		if gm.stage == StageEducation {
			return gm.config.Game.DaysPerSemester - gm.progress.SemesterDays, nil
		}
		return gm.config.Game.DaysPerSemester, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTimeUnit, unit)
}

// AdvanceTime moves the clock forward by one unit and runs everything that
// falls due on the way: semester ends, service months, paydays, application
// screening, interviews and at most one new life event.
func (gm *GameManager) AdvanceTime(unit TimeUnit) (AdvanceReport, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if err := gm.requireStage(StageEducation, StageMilitary, StageCareer); err != nil {
		return AdvanceReport{}, err
	}
	if gm.stage == StageEducation && gm.education.State().UniversityID == "" {
		return AdvanceReport{}, ErrNotEnrolled
	}
	days, err := gm.days(unit)
	if err != nil {
		return AdvanceReport{}, err
	}

	startStage := gm.stage
	report := AdvanceReport{Unit: unit, Days: days}

	for day := 0; day < days; day++ {
		gm.vitals.AdvanceTime(1)

		switch gm.stage {
		case StageEducation:
			gm.progress.SemesterDays++
			if gm.progress.SemesterDays >= gm.config.Game.DaysPerSemester {
				gm.progress.SemesterDays = 0
				if err := gm.endSemester(&report); err != nil {
					return report, err
				}
			}
		case StageMilitary:
			gm.progress.ServiceDays++
			if gm.progress.ServiceDays >= daysPerMonth {
				gm.progress.ServiceDays = 0
				if err := gm.serviceMonth(&report); err != nil {
					return report, err
				}
			}
		case StageCareer:
			if gm.career.CurrentJob() == nil {
				gm.progress.PayDays = 0
				continue
			}
			gm.progress.PayDays++
			if gm.progress.PayDays >= daysPerMonth {
				gm.progress.PayDays = 0
				salary := gm.career.Salary()
				gm.vitals.RecordSalary(salary)
				report.SalaryPaid += salary
			}
		}
	}

	gm.resolveDue(&report)
	gm.rollLifeEvent(days, &report)
	gm.resync()

	report.Date = gm.now()
	report.Stage = gm.stage
	report.StageChanged = gm.stage != startStage

	gm.Logger.Info("Time advanced",
		zap.String("game_id", gm.id),
		zap.String("unit", string(unit)),
		zap.Int("days", days),
		zap.Time("date", report.Date),
		zap.String("stage", string(gm.stage)),
		zap.Float64("salary_paid", report.SalaryPaid))

	return report, nil
}

// endSemester grades what is left ungraded, closes the semester, carries the
// skill growth to the character and, after the last one, leaves university.
func (gm *GameManager) endSemester(report *AdvanceReport) error {
	state := gm.education.State()
	for _, course := range state.SelectedCourses {
		if _, graded := state.CourseGrades[course.ID]; graded {
			continue
		}
		grade := gm.autoGrade(state)
		if err := gm.education.CompleteCourse(course.ID, grade); err != nil {
			return err
		}
	}

	result, err := gm.education.AdvanceSemester()
	if err != nil {
		return err
	}

	gm.vitals.ModifyEnergy(result.EnergyRecovered)
	for key, gain := range result.SkillGains {
		gm.character.ImproveSkill(character.SkillKey(key), gain*educationSkillTransfer)
	}

	summary := SemesterSummary{
		Semester:  result.Record.Semester,
		GPA:       result.Record.GPA,
		Graduated: result.Graduated,
	}
	if result.Event != nil {
		summary.EventID = result.Event.ID
		report.TriggeredEvent = eventView(sourceEducation, result.Event)
	}
	report.Semesters = append(report.Semesters, summary)

	gm.Logger.Info("Semester completed",
		zap.String("game_id", gm.id),
		zap.Int("semester", summary.Semester),
		zap.Float64("gpa", summary.GPA),
		zap.Bool("graduated", summary.Graduated))

	if !result.Graduated {
		return nil
	}
	if gm.militaryEligible() {
		if err := gm.career.StartMilitaryService(career.MilitaryDetails{DurationMonths: gm.config.Game.MilitaryMonths}); err != nil {
			return err
		}
		gm.setStage(StageMilitary)
		return nil
	}
	gm.setStage(StageCareer)
	return nil
}

// autoGrade rolls a grade from intelligence, study time and knowledge
func (gm *GameManager) autoGrade(state education.State) education.Grade {
	score := float64(gm.character.Attribute(character.Intelligence))*0.3 +
		float64(state.AllocatedTime[education.Study])*0.4 +
		state.Skills[education.AcademicKnowledge]*0.05 +
		gm.dice.Between(-1.5, 1.5)
	for _, g := range autoGrades {
		if score >= g.min {
			return g.grade
		}
	}
	return education.GradeF
}

func (gm *GameManager) militaryEligible() bool {
	if gm.career.MilitaryService() != nil {
		return false
	}
	switch gm.config.Game.MilitaryEligibility {
	case "all":
		return true
	case "none":
		return false
	default:
		return gm.character.Gender == character.GenderMale
	}
}

// serviceMonth runs one month of service and discharges when it is due
func (gm *GameManager) serviceMonth(report *AdvanceReport) error {
	tick, err := gm.career.SkipServiceTime(gm.character)
	if err != nil {
		return err
	}
	for key, delta := range tick.SkillDeltas {
		gm.character.ImproveSkill(key, delta)
	}
	report.ServiceTicks = append(report.ServiceTicks, tick)

	record := gm.career.MilitaryService()
	if record == nil || !record.Due() {
		return nil
	}
	done, err := gm.career.CompleteMilitaryService(gm.character, career.MilitaryEndDetails{})
	if err != nil {
		return err
	}
	gm.Logger.Info("Military service completed",
		zap.String("game_id", gm.id),
		zap.String("rank", done.Rank),
		zap.Int("commendations", len(done.Commendations)))
	gm.setStage(StageCareer)
	return nil
}

// rollLifeEvent queues at most one random life event for the span just
// simulated, then lets the queue surface whatever is due.
func (gm *GameManager) rollLifeEvent(days int, report *AdvanceReport) {
	events := gm.tables.LifeEvents
	if len(events) > 0 && days > 0 {
		p := 1 - math.Pow(1-gm.config.Game.DailyEventChance, float64(days))
		if gm.dice.Chance(p) {
			event := events[gm.dice.Pick(len(events))]
			gm.vitals.QueueEvent(event, gm.now())
		}
	}

	if event, ok := gm.vitals.ProcessEventQueue(); ok {
		gm.Logger.Info("Life event triggered",
			zap.String("game_id", gm.id),
			zap.String("event_id", event.ID))
		if report.TriggeredEvent == nil {
			report.TriggeredEvent = eventView(sourceLife, event)
		}
	}
}
