package resume

import (
	"fmt"
	"math"
	"strings"

	"github.com/user/career-path/internal/character"
)

// CharacterSnapshot is the read-only view of the character a sync needs
type CharacterSnapshot struct {
	Name     string
	Gender   string
	Hometown string
	Skills   map[character.SkillKey]float64
}

// EducationSnapshot is the read-only view of the education model
type EducationSnapshot struct {
	University         string
	Program            string
	GPA                float64
	SemestersCompleted int
	Graduated          bool
	CompletedCourses   []string
}

// CareerSnapshot is the read-only view of the career model. Jobs holds past
// positions followed by the current one, which has no end date.
type CareerSnapshot struct {
	YearsOfExperience float64
	Jobs              []WorkEntry
	Military          *MilitaryEntry
}

// proficiency a foreign language needs to count on the resume
const fluentLanguage = 4.0

var leadershipWords = map[string]bool{
	"lead":     true,
	"manager":  true,
	"director": true,
	"head":     true,
	"cto":      true,
	"chief":    true,
}

// SyncCharacter refreshes personal info and the skill lists
func SyncCharacter(r Resume, c CharacterSnapshot) Resume {
	out := r.clone()
	out.PersonalInfo = PersonalInfo{Name: c.Name, Gender: c.Gender, Hometown: c.Hometown}

	out.Skills = SkillsSection{
		Technical: skillEntries(c.Skills, character.TechnicalSkills),
		Soft:      skillEntries(c.Skills, character.SoftSkills),
		Languages: skillEntries(c.Skills, character.LanguageSkills),
	}

	out.SectionStrengths[SectionSkills] = SkillsStrength(c.Skills)
	out.SectionStrengths[SectionAdditional] = AdditionalStrength(out)
	out.Objective = objective(out)
	return out
}

func skillEntries(skills map[character.SkillKey]float64, keys []character.SkillKey) []SkillEntry {
	entries := make([]SkillEntry, 0, len(keys))
	for _, k := range keys {
		if level, ok := skills[k]; ok {
			entries = append(entries, SkillEntry{Key: k, Level: level})
		}
	}
	return entries
}

// SyncEducation refreshes the education section
func SyncEducation(r Resume, e EducationSnapshot) Resume {
	out := r.clone()
	out.Education = EducationEntry{
		University:         e.University,
		Program:            e.Program,
		GPA:                e.GPA,
		SemestersCompleted: e.SemestersCompleted,
		Graduated:          e.Graduated,
		Courses:            append([]string{}, e.CompletedCourses...),
	}
	out.SectionStrengths[SectionEducation] = EducationStrength(out.Education)
	out.Objective = objective(out)
	return out
}

// SyncCareer refreshes work experience and the military entry
func SyncCareer(r Resume, c CareerSnapshot) Resume {
	out := r.clone()
	out.WorkExperience = append([]WorkEntry{}, c.Jobs...)
	out.YearsOfExperience = c.YearsOfExperience
	out.Additional.Military = nil
	if c.Military != nil {
		m := *c.Military
		m.Commendations = append([]string{}, m.Commendations...)
		out.Additional.Military = &m
	}

	out.SectionStrengths[SectionWorkExperience] = WorkExperienceStrength(c.YearsOfExperience, c.Jobs)
	out.SectionStrengths[SectionAdditional] = AdditionalStrength(out)
	out.Objective = objective(out)
	return out
}

// AddProject appends a completed project
func AddProject(r Resume, p Project) Resume {
	out := r.clone()
	p.Technologies = append([]string{}, p.Technologies...)
	out.Projects = append(out.Projects, p)
	out.SectionStrengths[SectionProjects] = ProjectsStrength(out.Projects)
	return out
}

// AddCertification appends an earned certification. A certification already
// on the resume is not added twice.
func AddCertification(r Resume, c Certification) Resume {
	out := r.clone()
	for _, existing := range out.Additional.Certifications {
		if existing.ID == c.ID {
			return out
		}
	}
	out.Additional.Certifications = append(out.Additional.Certifications, c)
	out.SectionStrengths[SectionAdditional] = AdditionalStrength(out)
	return out
}

// EducationStrength scores GPA, semesters completed and graduation
func EducationStrength(e EducationEntry) float64 {
	score := math.Min(6, e.GPA*1.5) + math.Min(2, float64(e.SemestersCompleted)*0.25)
	if e.Graduated {
		score += 2
	}
	return round2(capStrength(score))
}

// SkillsStrength scores every level above the base of 1, ignoring the native language
func SkillsStrength(skills map[character.SkillKey]float64) float64 {
	score := 0.0
	for k, level := range skills {
		if k == character.Azerbaijani {
			continue
		}
		score += math.Max(0, level-character.MinSkill) * 0.25
	}
	return round2(capStrength(score))
}

// WorkExperienceStrength scores years, distinct employers, leadership titles
// and international positions
func WorkExperienceStrength(years float64, jobs []WorkEntry) float64 {
	companies := make(map[string]bool)
	leadership, international := false, false
	for _, j := range jobs {
		companies[j.Company] = true
		if isLeadershipTitle(j.Position) {
			leadership = true
		}
		if j.International {
			international = true
		}
	}

	score := math.Min(5, years) + math.Min(3, float64(len(companies)))
	if leadership {
		score++
	}
	if international {
		score++
	}
	return round2(capStrength(score))
}

func isLeadershipTitle(title string) bool {
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if leadershipWords[strings.Trim(w, ",()/-")] {
			return true
		}
	}
	return false
}

// ProjectsStrength gives 2 points per project and 1 more when it used at
// least three technologies
func ProjectsStrength(projects []Project) float64 {
	score := 0.0
	for _, p := range projects {
		score += 2
		if len(p.Technologies) >= 3 {
			score++
		}
	}
	return round2(capStrength(score))
}

// AdditionalStrength scores certifications, fluent foreign languages and
// completed military service
func AdditionalStrength(r Resume) float64 {
	score := float64(len(r.Additional.Certifications)) * 1.5
	for _, l := range r.Skills.Languages {
		if l.Key != character.Azerbaijani && l.Level >= fluentLanguage {
			score++
		}
	}
	if m := r.Additional.Military; m != nil && m.Completed {
		score += 2 + float64(len(m.Commendations))*0.5
	}
	return round2(capStrength(score))
}

func objective(r Resume) string {
	for i := len(r.WorkExperience) - 1; i >= 0; i-- {
		if j := r.WorkExperience[i]; j.EndDate == nil {
			return fmt.Sprintf("%s at %s looking to take on broader responsibility", j.Position, j.Company)
		}
	}
	switch {
	case r.Education.Graduated && r.Education.Program != "":
		return fmt.Sprintf("%s graduate seeking an entry-level IT position", r.Education.Program)
	case r.Education.Program != "":
		return fmt.Sprintf("%s student seeking internships and part-time IT work", r.Education.Program)
	default:
		return "Motivated candidate seeking a start in the IT industry"
	}
}
