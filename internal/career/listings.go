package career

import (
	"math"

	"github.com/google/uuid"
)

// monthly base salary and per-reputation-point bonus by level, in manat
var (
	baseSalary = map[Level]float64{
		LevelEntry:         800,
		LevelProfessional:  1500,
		LevelDistinguished: 2800,
		LevelExecutive:     5000,
	}
	reputationCoefficient = map[Level]float64{
		LevelEntry:         40,
		LevelProfessional:  80,
		LevelDistinguished: 150,
		LevelExecutive:     300,
	}
	requiredSkillCount = map[Level]int{
		LevelEntry:         2,
		LevelProfessional:  3,
		LevelDistinguished: 4,
		LevelExecutive:     5,
	}
)

const salaryJitter = 0.2

// GenerateJobListings draws random company and title pairs. A nil level picks
// a random level per listing. Nothing is stored.
func (m *Model) GenerateJobListings(count int, level *Level) []JobListing {
	listings := make([]JobListing, 0, count)
	if m.market == nil || len(m.market.Companies) == 0 {
		return listings
	}

	for i := 0; i < count; i++ {
		lvl := Levels[m.rng.Pick(len(Levels))]
		if level != nil {
			lvl = *level
		}

		titles := m.market.JobTitlesForLevel(string(lvl))
		if len(titles) == 0 {
			continue
		}
		title := titles[m.rng.Pick(len(titles))]
		company := m.market.Companies[m.rng.Pick(len(m.market.Companies))]

		salary := baseSalary[lvl] + float64(company.Reputation)*reputationCoefficient[lvl]
		salary *= 1 + m.rng.Between(-salaryJitter, salaryJitter)
		salary = math.Round(salary/10) * 10

		skills := m.market.SkillsForCategory(title.Category)
		m.rng.Shuffle(len(skills), func(a, b int) { skills[a], skills[b] = skills[b], skills[a] })
		n := requiredSkillCount[lvl]
		if n > len(skills) {
			n = len(skills)
		}
		required := make([]string, 0, n)
		for _, s := range skills[:n] {
			required = append(required, s.ID)
		}

		listings = append(listings, JobListing{
			ID:             uuid.New().String(),
			CompanyID:      company.ID,
			Company:        company.Name,
			Position:       title.Title,
			Category:       title.Category,
			Level:          lvl,
			Salary:         salary,
			Reputation:     company.Reputation,
			International:  company.International,
			RequiredSkills: required,
		})
	}

	return listings
}
