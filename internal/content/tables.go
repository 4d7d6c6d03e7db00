// Package content provides the static catalogs the simulation reads from:
// universities, programs, courses, companies, job titles, skills,
// certifications and event definitions. Tables are read-only once loaded.
package content

import (
	"fmt"

	"github.com/user/career-path/internal/types"
)

// University represents a university the character can enroll in
type University struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	City     string   `json:"city"`
	Prestige int      `json:"prestige"` // 1-10
	Programs []string `json:"programs"`
}

// Program represents a degree program
type Program struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Field     string `json:"field"`
	Semesters int    `json:"semesters"`
}

// Course represents one course in a semester catalog
type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Semester int    `json:"semester"`
	Credits  int    `json:"credits"`
	Category string `json:"category"`
}

// Company represents a potential employer
type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Reputation    int    `json:"reputation"` // 1-10
	International bool   `json:"international"`
}

// JobTitle represents a position a company can offer
type JobTitle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// Skill represents an entry of the skills table
type Skill struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"` // technical, soft, language
	JobCategories []string `json:"jobCategories"`
}

// Certification represents an industry certification
type Certification struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Issuer   string `json:"issuer"`
	Skill    string `json:"skill"`
	Prestige int    `json:"prestige"`
}

// Tables bundles every catalog
type Tables struct {
	Universities    []University    `json:"universities"`
	Programs        []Program       `json:"programs"`
	Courses         []Course        `json:"courses"`
	Companies       []Company       `json:"companies"`
	JobTitles       []JobTitle      `json:"job_titles"`
	Skills          []Skill         `json:"skills"`
	Certifications  []Certification `json:"certifications"`
	EducationEvents []types.Event   `json:"education_events"`
	LifeEvents      []types.Event   `json:"life_events"`
}

// CoursesForSemester returns the catalog of one semester. Out-of-range
// semesters yield an empty list.
func (t *Tables) CoursesForSemester(semester int) []Course {
	courses := make([]Course, 0, 5)
	for _, c := range t.Courses {
		if c.Semester == semester {
			courses = append(courses, c)
		}
	}
	return courses
}

// Semesters returns the highest semester number with a catalog
func (t *Tables) Semesters() int {
	max := 0
	for _, c := range t.Courses {
		if c.Semester > max {
			max = c.Semester
		}
	}
	return max
}

// University looks up a university by id
func (t *Tables) University(id string) (University, bool) {
	for _, u := range t.Universities {
		if u.ID == id {
			return u, true
		}
	}
	return University{}, false
}

// Program looks up a program by id
func (t *Tables) Program(id string) (Program, bool) {
	for _, p := range t.Programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// Company looks up a company by id
func (t *Tables) Company(id string) (Company, bool) {
	for _, c := range t.Companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

// Skill looks up a skill by id
func (t *Tables) Skill(id string) (Skill, bool) {
	for _, s := range t.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Certification looks up a certification by id
func (t *Tables) Certification(id string) (Certification, bool) {
	for _, c := range t.Certifications {
		if c.ID == id {
			return c, true
		}
	}
	return Certification{}, false
}

// JobTitlesForLevel returns the titles offered at a career level
func (t *Tables) JobTitlesForLevel(level string) []JobTitle {
	var titles []JobTitle
	for _, jt := range t.JobTitles {
		if jt.Level == level {
			titles = append(titles, jt)
		}
	}
	return titles
}

// SkillsForCategory returns technical and soft skills relevant to a job category
func (t *Tables) SkillsForCategory(category string) []Skill {
	var skills []Skill
	for _, s := range t.Skills {
		for _, c := range s.JobCategories {
			if c == category {
				skills = append(skills, s)
				break
			}
		}
	}
	return skills
}

// Validate checks ids are unique per table and cross references resolve
// against the skills and programs tables.
func (t *Tables) Validate() error {
	seen := make(map[string]bool)
	check := func(table, id string) error {
		key := table + "/" + id
		if id == "" {
			return fmt.Errorf("%s: entry without id", table)
		}
		if seen[key] {
			return fmt.Errorf("%s: duplicate id %q", table, id)
		}
		seen[key] = true
		return nil
	}

	for _, s := range t.Skills {
		if err := check("skills", s.ID); err != nil {
			return err
		}
	}
	for _, p := range t.Programs {
		if err := check("programs", p.ID); err != nil {
			return err
		}
	}
	for _, u := range t.Universities {
		if err := check("universities", u.ID); err != nil {
			return err
		}
		for _, pid := range u.Programs {
			if !seen["programs/"+pid] {
				return fmt.Errorf("university %s: unknown program %q", u.ID, pid)
			}
		}
	}
	for _, c := range t.Courses {
		if err := check("courses", c.ID); err != nil {
			return err
		}
	}
	for _, c := range t.Companies {
		if err := check("companies", c.ID); err != nil {
			return err
		}
	}
	for _, jt := range t.JobTitles {
		if err := check("job_titles", jt.ID); err != nil {
			return err
		}
	}
	for _, c := range t.Certifications {
		if err := check("certifications", c.ID); err != nil {
			return err
		}
		if !seen["skills/"+c.Skill] {
			return fmt.Errorf("certification %s: unknown skill %q", c.ID, c.Skill)
		}
	}
	for _, events := range [][]types.Event{t.EducationEvents, t.LifeEvents} {
		for _, e := range events {
			if err := check("events", e.ID); err != nil {
				return err
			}
			for _, opt := range e.Options {
				for _, eff := range opt.Effects {
					if eff.Kind == types.EffectNested && eff.Category == types.CategorySkills && !seen["skills/"+eff.Key] {
						return fmt.Errorf("event %s: unknown skill %q", e.ID, eff.Key)
					}
				}
			}
		}
	}

	return nil
}
