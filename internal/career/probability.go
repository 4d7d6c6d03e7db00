package career

import (
	"math"

	"github.com/user/career-path/internal/character"
)

const (
	minChance = 0.1
	maxChance = 0.9
)

var (
	technicalInterviewSkills = []character.SkillKey{character.Programming, character.Algorithms, character.Databases, character.WebDevelopment}
	hrInterviewSkills        = []character.SkillKey{character.Communication, character.Teamwork}
)

func averageSkill(c Candidate, keys []character.SkillKey) float64 {
	if len(keys) == 0 {
		return 0
	}
	total := 0.0
	for _, k := range keys {
		total += c.Skill(k)
	}
	return total / float64(len(keys))
}

func clampChance(p float64) float64 {
	return math.Max(minChance, math.Min(maxChance, p))
}

// InterviewSuccessProbability is the chance of passing one interview stage
func InterviewSuccessProbability(stage InterviewType, c Candidate, resumeQuality float64) float64 {
	p := 0.5
	switch stage {
	case InterviewTechnical:
		p += float64(c.Attribute(character.Intelligence))*0.05 + averageSkill(c, technicalInterviewSkills)*0.08
	case InterviewHR:
		p += float64(c.Attribute(character.Charisma))*0.06 + averageSkill(c, hrInterviewSkills)*0.06
	case InterviewFinal:
		p += float64(c.Attribute(character.Charisma))*0.04 +
			float64(c.Attribute(character.Intelligence))*0.03 +
			float64(c.Attribute(character.Adaptability))*0.03
	}
	p += resumeQuality / 10 * 0.2
	return clampChance(p)
}

// ApplicationSuccessProbability is the chance an application is screened in
// for a first interview. Required skills at level 3 or above count as a
// match; each level the listing sits above the candidate costs 0.15.
func ApplicationSuccessProbability(listing JobListing, c Candidate, resumeQuality float64, current Level, reputation int) float64 {
	p := 0.3 + resumeQuality/10*0.3 + float64(reputation)*0.01

	if len(listing.RequiredSkills) > 0 {
		matched := 0
		for _, s := range listing.RequiredSkills {
			if c.Skill(character.SkillKey(s)) >= 3 {
				matched++
			}
		}
		p += float64(matched) / float64(len(listing.RequiredSkills)) * 0.3
	} else {
		p += 0.15
	}

	if gap := listing.Level.rank() - current.rank(); gap > 0 {
		p -= float64(gap) * 0.15
	}

	return clampChance(p)
}
