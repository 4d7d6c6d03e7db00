// Package character implements the player's identity, attributes, social
// connections and skills, together with the point budgets enforced while the
// character is being created.
package character

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/user/career-path/internal/types"
)

// Gender of the character
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// FamilyBackground of the character
type FamilyBackground string

const (
	BackgroundLower  FamilyBackground = "lower"
	BackgroundMiddle FamilyBackground = "middle"
	BackgroundHigher FamilyBackground = "higher"
)

// AttributeKey names one of the six core attributes
type AttributeKey string

const (
	Intelligence     AttributeKey = "intelligence"
	Creativity       AttributeKey = "creativity"
	Charisma         AttributeKey = "charisma"
	Discipline       AttributeKey = "discipline"
	Adaptability     AttributeKey = "adaptability"
	StressResistance AttributeKey = "stressResistance"
)

// ConnectionKey names one of the four connection sectors
type ConnectionKey string

const (
	Academic        ConnectionKey = "academic"
	Industry        ConnectionKey = "industry"
	Government      ConnectionKey = "government"
	Entrepreneurial ConnectionKey = "entrepreneurial"
)

// SkillKey names one of the nineteen skills
type SkillKey string

const (
	Azerbaijani SkillKey = "azerbaijani"
	English     SkillKey = "english"
	Russian     SkillKey = "russian"
	Turkish     SkillKey = "turkish"

	Programming       SkillKey = "programming"
	Algorithms        SkillKey = "algorithms"
	Databases         SkillKey = "databases"
	WebDevelopment    SkillKey = "webDevelopment"
	MobileDevelopment SkillKey = "mobileDevelopment"
	DataScience       SkillKey = "dataScience"
	Cybersecurity     SkillKey = "cybersecurity"
	CloudComputing    SkillKey = "cloudComputing"

	Communication    SkillKey = "communication"
	Teamwork         SkillKey = "teamwork"
	Leadership       SkillKey = "leadership"
	ProblemSolving   SkillKey = "problemSolving"
	CriticalThinking SkillKey = "criticalThinking"
	TimeManagement   SkillKey = "timeManagement"
	DisciplineSkill  SkillKey = "discipline"
)

// Value ranges
const (
	MinAttribute  = 1
	MaxAttribute  = 10
	MinConnection = 0
	MaxConnection = 5
	MinSkill      = 1.0
	MaxSkill      = 5.0
	NativeSkill   = 5.0

	DefaultAttribute = 5
)

var (
	// Attributes lists the attribute keys in display order
	Attributes = []AttributeKey{Intelligence, Creativity, Charisma, Discipline, Adaptability, StressResistance}
	// Connections lists the connection keys in display order
	Connections = []ConnectionKey{Academic, Industry, Government, Entrepreneurial}
	// LanguageSkills are the language entries of the skill map
	LanguageSkills = []SkillKey{Azerbaijani, English, Russian, Turkish}
	// TechnicalSkills are the technical entries of the skill map
	TechnicalSkills = []SkillKey{Programming, Algorithms, Databases, WebDevelopment, MobileDevelopment, DataScience, Cybersecurity, CloudComputing}
	// SoftSkills are the soft entries of the skill map
	SoftSkills = []SkillKey{Communication, Teamwork, Leadership, ProblemSolving, CriticalThinking, TimeManagement, DisciplineSkill}
)

// AllSkills returns every skill key
func AllSkills() []SkillKey {
	all := make([]SkillKey, 0, len(LanguageSkills)+len(TechnicalSkills)+len(SoftSkills))
	all = append(all, LanguageSkills...)
	all = append(all, TechnicalSkills...)
	return append(all, SoftSkills...)
}

// IsTechnical reports whether key is a technical skill
func IsTechnical(key SkillKey) bool {
	for _, k := range TechnicalSkills {
		if k == key {
			return true
		}
	}
	return false
}

// Character represents the player's character
type Character struct {
	Name             string                `json:"name"`
	Gender           Gender                `json:"gender"`
	FamilyBackground FamilyBackground      `json:"familyBackground"`
	Hometown         string                `json:"hometown"`
	Attributes       map[AttributeKey]int  `json:"attributes"`
	Connections      map[ConnectionKey]int `json:"connections"`
	Skills           map[SkillKey]float64  `json:"skills"`
	IsCreated        bool                  `json:"isCreated"`
}

// New returns a character with default values
func New() *Character {
	c := &Character{}
	c.Reset()
	return c
}

// Reset restores the default state
func (c *Character) Reset() {
	*c = Character{
		Gender:           GenderMale,
		FamilyBackground: BackgroundMiddle,
		Hometown:         "Baku",
		Attributes:       make(map[AttributeKey]int, len(Attributes)),
		Connections:      make(map[ConnectionKey]int, len(Connections)),
		Skills:           make(map[SkillKey]float64, 19),
	}
	c.fillDefaults()
}

func (c *Character) fillDefaults() {
	if c.Attributes == nil {
		c.Attributes = make(map[AttributeKey]int, len(Attributes))
	}
	if c.Connections == nil {
		c.Connections = make(map[ConnectionKey]int, len(Connections))
	}
	if c.Skills == nil {
		c.Skills = make(map[SkillKey]float64, 19)
	}
	for _, k := range Attributes {
		if _, ok := c.Attributes[k]; !ok {
			c.Attributes[k] = DefaultAttribute
		}
	}
	for _, k := range Connections {
		if _, ok := c.Connections[k]; !ok {
			c.Connections[k] = MinConnection
		}
	}
	for _, k := range AllSkills() {
		if _, ok := c.Skills[k]; !ok {
			c.Skills[k] = MinSkill
		}
	}
	c.Skills[Azerbaijani] = NativeSkill
}

// SetIdentity sets the descriptive fields. No-op once the character is created.
func (c *Character) SetIdentity(name string, gender Gender, background FamilyBackground, hometown string) bool {
	if c.IsCreated {
		return false
	}
	if gender != GenderMale && gender != GenderFemale {
		return false
	}
	switch background {
	case BackgroundLower, BackgroundMiddle, BackgroundHigher:
	default:
		return false
	}
	c.Name = name
	c.Gender = gender
	c.FamilyBackground = background
	c.Hometown = hometown
	return true
}

// SetAttribute sets an attribute during creation
func (c *Character) SetAttribute(key AttributeKey, value int) bool {
	if c.IsCreated || value < MinAttribute || value > MaxAttribute {
		return false
	}
	if _, ok := c.Attributes[key]; !ok {
		return false
	}
	c.Attributes[key] = value
	return true
}

// SetConnection sets a connection during creation
func (c *Character) SetConnection(key ConnectionKey, value int) bool {
	if c.IsCreated || value < MinConnection || value > MaxConnection {
		return false
	}
	if _, ok := c.Connections[key]; !ok {
		return false
	}
	c.Connections[key] = value
	return true
}

// SetSkill sets a skill during creation. The native language is pinned.
func (c *Character) SetSkill(key SkillKey, value int) bool {
	if c.IsCreated || key == Azerbaijani {
		return false
	}
	if float64(value) < MinSkill || float64(value) > MaxSkill {
		return false
	}
	if _, ok := c.Skills[key]; !ok {
		return false
	}
	c.Skills[key] = float64(value)
	return true
}

// FinalizeCharacter marks the character as created. Calling it again is harmless.
func (c *Character) FinalizeCharacter() {
	c.IsCreated = true
}

// TotalAttributePoints sums all attributes
func (c *Character) TotalAttributePoints() int {
	total := 0
	for _, v := range c.Attributes {
		total += v
	}
	return total
}

// TotalConnectionPoints sums all connections
func (c *Character) TotalConnectionPoints() int {
	total := 0
	for _, v := range c.Connections {
		total += v
	}
	return total
}

// TotalSkillPoints counts the points spent above the base level of 1,
// ignoring the native language.
func (c *Character) TotalSkillPoints() int {
	total := 0.0
	for k, v := range c.Skills {
		if k == Azerbaijani {
			continue
		}
		total += v - MinSkill
	}
	return int(math.Round(total))
}

// Attribute returns an attribute value, zero when unknown
func (c *Character) Attribute(key AttributeKey) int {
	return c.Attributes[key]
}

// Skill returns a skill value, zero when unknown
func (c *Character) Skill(key SkillKey) float64 {
	return c.Skills[key]
}

// ImproveSkill applies gameplay growth or decay. Values stay within 1..5 and
// the native language never moves.
func (c *Character) ImproveSkill(key SkillKey, delta float64) bool {
	current, ok := c.Skills[key]
	if !ok || key == Azerbaijani {
		return false
	}
	c.Skills[key] = clampFloat(current+delta, MinSkill, MaxSkill)
	return true
}

// ApplyScalar implements types.EffectTarget; characters own no scalar fields.
func (c *Character) ApplyScalar(string, float64) bool {
	return false
}

// ApplyNested implements types.EffectTarget for skills, attributes and connections
func (c *Character) ApplyNested(category, key string, delta float64) bool {
	switch category {
	case types.CategorySkills:
		return c.ImproveSkill(SkillKey(key), delta)
	case types.CategoryAttributes:
		current, ok := c.Attributes[AttributeKey(key)]
		if !ok {
			return false
		}
		c.Attributes[AttributeKey(key)] = clampInt(current+int(math.Round(delta)), MinAttribute, MaxAttribute)
		return true
	case types.CategoryConnections:
		current, ok := c.Connections[ConnectionKey(key)]
		if !ok {
			return false
		}
		c.Connections[ConnectionKey(key)] = clampInt(current+int(math.Round(delta)), MinConnection, MaxConnection)
		return true
	}
	return false
}

// Clone returns a deep copy
func (c *Character) Clone() Character {
	out := *c
	out.Attributes = make(map[AttributeKey]int, len(c.Attributes))
	for k, v := range c.Attributes {
		out.Attributes[k] = v
	}
	out.Connections = make(map[ConnectionKey]int, len(c.Connections))
	for k, v := range c.Connections {
		out.Connections[k] = v
	}
	out.Skills = make(map[SkillKey]float64, len(c.Skills))
	for k, v := range c.Skills {
		out.Skills[k] = v
	}
	return out
}

// Serialize returns the persisted document
func (c *Character) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character: %w", err)
	}
	return data, nil
}

// Restore replaces the state from a document, filling fields the document lacks
func (c *Character) Restore(doc json.RawMessage) error {
	restored := New()
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, restored); err != nil {
			return fmt.Errorf("failed to parse character: %w", err)
		}
	}
	restored.fillDefaults()
	*c = *restored
	return nil
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
