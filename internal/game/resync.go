package game

import (
	"slices"

	"github.com/user/career-path/internal/career"
	"github.com/user/career-path/internal/resume"
)

// resync rebuilds the derived resume from the current models and rescores it.
// Every operation that changes a model calls it before returning.
func (gm *GameManager) resync() {
	r := resume.SyncCharacter(gm.resume, resume.CharacterSnapshot{
		Name:     gm.character.Name,
		Gender:   string(gm.character.Gender),
		Hometown: gm.character.Hometown,
		Skills:   gm.character.Skills,
	})
	r = resume.SyncEducation(r, gm.educationSnapshot())
	r = resume.SyncCareer(r, gm.careerSnapshot())
	gm.resume = resume.CalculateResumeQuality(r)
}

func (gm *GameManager) educationSnapshot() resume.EducationSnapshot {
	st := gm.education.State()
	snap := resume.EducationSnapshot{
		GPA:                st.GPA,
		SemestersCompleted: len(st.SemesterHistory),
		Graduated:          st.Graduated,
	}
	if uni, ok := gm.tables.University(st.UniversityID); ok {
		snap.University = uni.Name
	}
	if program, ok := gm.tables.Program(st.ProgramID); ok {
		snap.Program = program.Name
	}
	for id := range st.CourseGrades {
		snap.CompletedCourses = append(snap.CompletedCourses, id)
	}
	slices.Sort(snap.CompletedCourses)
	return snap
}

func (gm *GameManager) careerSnapshot() resume.CareerSnapshot {
	st := gm.career.State()
	snap := resume.CareerSnapshot{
		YearsOfExperience: gm.career.ExperienceAt(gm.now()),
	}
	for _, job := range st.WorkExperiences {
		snap.Jobs = append(snap.Jobs, workEntry(job))
	}
	if st.CurrentJob != nil {
		snap.Jobs = append(snap.Jobs, workEntry(*st.CurrentJob))
	}
	if service := st.MilitaryService; service != nil {
		snap.Military = &resume.MilitaryEntry{
			Branch:        service.Branch,
			Rank:          service.Rank,
			Completed:     service.Completed,
			Commendations: service.Commendations,
		}
	}
	return snap
}

func workEntry(job career.JobRecord) resume.WorkEntry {
	return resume.WorkEntry{
		Company:       job.Company,
		Position:      job.Position,
		StartDate:     job.StartDate,
		EndDate:       job.EndDate,
		International: job.International,
	}
}
