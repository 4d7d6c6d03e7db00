// Package resume derives the player's resume from snapshots of the character,
// education and career models and scores it. Everything here is a pure
// function of its inputs; the source models are never touched.
package resume

import (
	"math"
	"time"

	"github.com/user/career-path/internal/character"
)

// Section names one scored part of the resume
type Section string

const (
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionWorkExperience Section = "workExperience"
	SectionProjects       Section = "projects"
	SectionAdditional     Section = "additional"
)

// Sections lists the scored sections in display order
var Sections = []Section{SectionEducation, SectionSkills, SectionWorkExperience, SectionProjects, SectionAdditional}

// Weights combine section strengths into the quality score. They sum to 1.
var Weights = map[Section]float64{
	SectionEducation:      0.25,
	SectionSkills:         0.20,
	SectionWorkExperience: 0.30,
	SectionProjects:       0.15,
	SectionAdditional:     0.10,
}

// MaxStrength caps every section strength and the quality score
const MaxStrength = 10.0

// QualityLevel is the coarse label for a quality score
type QualityLevel string

const (
	QualityEntry         QualityLevel = "entry"
	QualityProfessional  QualityLevel = "professional"
	QualityDistinguished QualityLevel = "distinguished"
	QualityExecutive     QualityLevel = "executive"
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Hometown string `json:"hometown"`
}

type EducationEntry struct {
	University         string   `json:"university"`
	Program            string   `json:"program"`
	GPA                float64  `json:"gpa"`
	SemestersCompleted int      `json:"semestersCompleted"`
	Graduated          bool     `json:"graduated"`
	Courses            []string `json:"courses"`
}

type SkillEntry struct {
	Key   character.SkillKey `json:"key"`
	Level float64            `json:"level"`
}

type SkillsSection struct {
	Technical []SkillEntry `json:"technical"`
	Soft      []SkillEntry `json:"soft"`
	Languages []SkillEntry `json:"languages"`
}

type WorkEntry struct {
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	International bool       `json:"international"`
}

type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	CompletedAt  time.Time `json:"completedAt"`
}

type Certification struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Issuer     string    `json:"issuer"`
	DateEarned time.Time `json:"dateEarned"`
}

type MilitaryEntry struct {
	Branch        string   `json:"branch"`
	Rank          string   `json:"rank"`
	Completed     bool     `json:"completed"`
	Commendations []string `json:"commendations"`
}

type AdditionalSection struct {
	Certifications []Certification `json:"certifications"`
	Military       *MilitaryEntry  `json:"military,omitempty"`
}

// Resume is the derived document. Only the sync functions and AddProject /
// AddCertification produce new versions of it.
type Resume struct {
	PersonalInfo      PersonalInfo        `json:"personalInfo"`
	Objective         string              `json:"objective"`
	Education         EducationEntry      `json:"education"`
	Skills            SkillsSection       `json:"skills"`
	WorkExperience    []WorkEntry         `json:"workExperience"`
	YearsOfExperience float64             `json:"yearsOfExperience"`
	Projects          []Project           `json:"projects"`
	Additional        AdditionalSection   `json:"additional"`
	SectionStrengths  map[Section]float64 `json:"sectionStrengths"`
	QualityScore      float64             `json:"qualityScore"`
	QualityLevel      QualityLevel        `json:"qualityLevel"`
}

// New returns an empty resume with every section scored 0
func New() Resume {
	r := Resume{}
	r.fillDefaults()
	return r
}

func (r *Resume) fillDefaults() {
	if r.Education.Courses == nil {
		r.Education.Courses = []string{}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []SkillEntry{}
	}
	if r.Skills.Soft == nil {
		r.Skills.Soft = []SkillEntry{}
	}
	if r.Skills.Languages == nil {
		r.Skills.Languages = []SkillEntry{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkEntry{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Additional.Certifications == nil {
		r.Additional.Certifications = []Certification{}
	}
	if r.SectionStrengths == nil {
		r.SectionStrengths = make(map[Section]float64, len(Sections))
	}
	for _, s := range Sections {
		if _, ok := r.SectionStrengths[s]; !ok {
			r.SectionStrengths[s] = 0
		}
	}
	if r.QualityLevel == "" {
		r.QualityLevel = QualityEntry
	}
}

// clone deep-copies r so a returned resume never shares backing storage
// with its input
func (r Resume) clone() Resume {
	c := r
	c.Education.Courses = append([]string{}, r.Education.Courses...)
	c.Skills.Technical = append([]SkillEntry{}, r.Skills.Technical...)
	c.Skills.Soft = append([]SkillEntry{}, r.Skills.Soft...)
	c.Skills.Languages = append([]SkillEntry{}, r.Skills.Languages...)
	c.WorkExperience = append([]WorkEntry{}, r.WorkExperience...)
	c.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = append([]string{}, p.Technologies...)
		c.Projects[i] = p
	}
	c.Additional.Certifications = append([]Certification{}, r.Additional.Certifications...)
	if r.Additional.Military != nil {
		m := *r.Additional.Military
		m.Commendations = append([]string{}, m.Commendations...)
		c.Additional.Military = &m
	}
	c.SectionStrengths = make(map[Section]float64, len(r.SectionStrengths))
	for k, v := range r.SectionStrengths {
		c.SectionStrengths[k] = v
	}
	c.fillDefaults()
	return c
}

// Normalize returns a copy of r with any missing collections filled in. Used
// after decoding a document written by an older version.
func Normalize(r Resume) Resume {
	return r.clone()
}

// Quality combines section strengths with the fixed weights. Missing
// sections count as 0 and strengths are capped before weighting.
func Quality(strengths map[Section]float64) (float64, QualityLevel) {
	score := 0.0
	for _, s := range Sections {
		score += capStrength(strengths[s]) * Weights[s]
	}
	score = round2(score)
	return score, LevelFor(score)
}

// LevelFor maps a quality score to its level
func LevelFor(score float64) QualityLevel {
	switch {
	case score < 4:
		return QualityEntry
	case score < 6:
		return QualityProfessional
	case score < 8:
		return QualityDistinguished
	default:
		return QualityExecutive
	}
}

// CalculateResumeQuality recomputes the quality score and level from the
// current section strengths
func CalculateResumeQuality(r Resume) Resume {
	out := r.clone()
	out.QualityScore, out.QualityLevel = Quality(out.SectionStrengths)
	return out
}

func capStrength(v float64) float64 {
	return math.Max(0, math.Min(MaxStrength, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
