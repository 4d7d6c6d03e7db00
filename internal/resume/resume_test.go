package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/career-path/internal/character"
)

func TestNewResume(t *testing.T) {
	r := New()
	assert.Len(t, r.SectionStrengths, len(Sections))
	assert.Equal(t, QualityEntry, r.QualityLevel)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Additional.Certifications)
}

func TestWeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, s := range Sections {
		total += Weights[s]
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, QualityEntry, LevelFor(0))
	assert.Equal(t, QualityEntry, LevelFor(3.99))
	assert.Equal(t, QualityProfessional, LevelFor(4))
	assert.Equal(t, QualityProfessional, LevelFor(5.99))
	assert.Equal(t, QualityDistinguished, LevelFor(6))
	assert.Equal(t, QualityExecutive, LevelFor(8))
	assert.Equal(t, QualityExecutive, LevelFor(10))
}

func TestQualityScore(t *testing.T) {
	score, level := Quality(map[Section]float64{
		SectionEducation:      10,
		SectionSkills:         5,
		SectionWorkExperience: 7,
		SectionProjects:       4,
		SectionAdditional:     2,
	})
	assert.InDelta(t, 6.4, score, 1e-9)
	assert.Equal(t, QualityDistinguished, level)

	// out-of-range strengths are capped
	score, level = Quality(map[Section]float64{SectionWorkExperience: 50})
	assert.InDelta(t, 3.0, score, 1e-9)
	assert.Equal(t, QualityEntry, level)
}

func TestQualityMonotonic(t *testing.T) {
	base := map[Section]float64{
		SectionEducation:      3,
		SectionSkills:         4.5,
		SectionWorkExperience: 2,
		SectionProjects:       0,
		SectionAdditional:     7,
	}
	before, _ := Quality(base)

	for _, s := range Sections {
		for _, step := range []float64{0.01, 0.5, 3, 20} {
			raised := make(map[Section]float64, len(base))
			for k, v := range base {
				raised[k] = v
			}
			raised[s] += step
			after, _ := Quality(raised)
			assert.GreaterOrEqual(t, after, before, "raising %s by %v", s, step)
		}
	}
}

func TestEducationStrength(t *testing.T) {
	assert.Equal(t, 10.0, EducationStrength(EducationEntry{GPA: 4.0, SemestersCompleted: 8, Graduated: true}))
	assert.Equal(t, 4.0, EducationStrength(EducationEntry{GPA: 2.0, SemestersCompleted: 4}))
	assert.Equal(t, 0.0, EducationStrength(EducationEntry{}))
}

func TestSkillsStrength(t *testing.T) {
	c := character.New()
	assert.Equal(t, 0.0, SkillsStrength(c.Skills))

	c.Skills[character.English] = 5
	c.Skills[character.Programming] = 3
	assert.Equal(t, 1.5, SkillsStrength(c.Skills))

	for _, k := range character.AllSkills() {
		c.Skills[k] = 5
	}
	assert.Equal(t, 10.0, SkillsStrength(c.Skills))
}

func TestWorkExperienceStrength(t *testing.T) {
	start := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(2, 0, 0)
	jobs := []WorkEntry{
		{Company: "Azercell", Position: "Software Developer", StartDate: start, EndDate: &end},
		{Company: "EPAM", Position: "Team Lead", StartDate: end, International: true},
	}
	assert.Equal(t, 7.0, WorkExperienceStrength(3, jobs))
	assert.Equal(t, 0.0, WorkExperienceStrength(0, nil))

	// "leadership" is not a leadership title
	assert.Equal(t, 1.0, WorkExperienceStrength(0, []WorkEntry{{Company: "X", Position: "Leadership Coach"}}))
}

func TestProjectsStrength(t *testing.T) {
	projects := []Project{
		{Name: "Portfolio", Technologies: []string{"html"}},
		{Name: "Shop", Technologies: []string{"go", "postgres", "react"}},
	}
	assert.Equal(t, 5.0, ProjectsStrength(projects))
}

func TestSyncAndAdditional(t *testing.T) {
	c := character.New()
	c.Name = "Leyla"
	c.Skills[character.English] = 5
	c.Skills[character.Russian] = 3

	r := New()
	synced := SyncCharacter(r, CharacterSnapshot{Name: c.Name, Gender: string(c.Gender), Hometown: c.Hometown, Skills: c.Skills})

	// the input is left untouched
	assert.Empty(t, r.Skills.Languages)
	assert.Empty(t, r.PersonalInfo.Name)

	assert.Equal(t, "Leyla", synced.PersonalInfo.Name)
	assert.Len(t, synced.Skills.Technical, len(character.TechnicalSkills))
	assert.Len(t, synced.Skills.Languages, len(character.LanguageSkills))
	assert.Equal(t, 1.0, synced.SectionStrengths[SectionAdditional])

	synced = AddCertification(synced, Certification{ID: "aws_saa", Name: "AWS Solutions Architect"})
	synced = AddCertification(synced, Certification{ID: "aws_saa", Name: "AWS Solutions Architect"})
	synced = AddCertification(synced, Certification{ID: "ccna", Name: "CCNA"})
	require.Len(t, synced.Additional.Certifications, 2)
	assert.Equal(t, 4.0, synced.SectionStrengths[SectionAdditional])

	synced = SyncCareer(synced, CareerSnapshot{
		Military: &MilitaryEntry{Rank: "Corporal", Completed: true, Commendations: []string{"a", "b"}},
	})
	assert.Equal(t, 7.0, synced.SectionStrengths[SectionAdditional])
}

func TestSyncEducationAndObjective(t *testing.T) {
	r := SyncEducation(New(), EducationSnapshot{
		University:         "ADA University",
		Program:            "Computer Science",
		GPA:                2.0,
		SemestersCompleted: 4,
		CompletedCourses:   []string{"cs101"},
	})
	assert.Equal(t, 4.0, r.SectionStrengths[SectionEducation])
	assert.Contains(t, r.Objective, "Computer Science student")

	r = SyncCareer(r, CareerSnapshot{
		YearsOfExperience: 1,
		Jobs:              []WorkEntry{{Company: "Azercell", Position: "QA Engineer"}},
	})
	assert.Contains(t, r.Objective, "QA Engineer at Azercell")
	assert.Equal(t, 2.0, r.SectionStrengths[SectionWorkExperience])
}

func TestCalculateResumeQuality(t *testing.T) {
	r := New()
	r = AddProject(r, Project{Name: "Shop", Technologies: []string{"go", "postgres", "react"}})
	r = SyncEducation(r, EducationSnapshot{GPA: 4.0, SemestersCompleted: 8, Graduated: true})
	assert.Equal(t, 0.0, r.QualityScore)

	r = CalculateResumeQuality(r)
	// 10*0.25 + 3*0.15
	assert.InDelta(t, 2.95, r.QualityScore, 1e-9)
	assert.Equal(t, QualityEntry, r.QualityLevel)
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	r := Normalize(Resume{SectionStrengths: map[Section]float64{SectionSkills: 3}})
	assert.Equal(t, 3.0, r.SectionStrengths[SectionSkills])
	assert.Contains(t, r.SectionStrengths, SectionProjects)
	assert.NotNil(t, r.WorkExperience)
	assert.Equal(t, QualityEntry, r.QualityLevel)
}
