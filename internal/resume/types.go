package resume

import (
	"fmt"
	"strings"
)

// SkillLevel 表示技能熟练度。
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// SkillLevels lists the selectable levels in display order.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Valid reports whether l is one of SkillLevels.
func (l SkillLevel) Valid() bool {
	for _, level := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ParseSkillLevel matches s case-insensitively against SkillLevels.
func ParseSkillLevel(s string) (SkillLevel, error) {
	trimmed := strings.TrimSpace(s)
	for _, level := range SkillLevels {
		if strings.EqualFold(trimmed, string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSkillLevel, s)
}

// Record 是一次编辑会话中的完整简历。
type Record struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []SkillEntry      `json:"skills"`
}

// PersonalInfo is the singleton header block of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`
}

// ExperienceEntry 描述一段工作经历。日期为 YYYY-MM 字符串，不做解析。
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationEntry 描述一段教育经历。
type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GPA       string `json:"gpa"`
}

// SkillEntry 描述一项技能。
type SkillEntry struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

func (e ExperienceEntry) EntryID() string { return e.ID }
func (e EducationEntry) EntryID() string  { return e.ID }
func (e SkillEntry) EntryID() string      { return e.ID }

// NewRecord returns the empty record a session starts with.
func NewRecord() Record {
	return Record{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []SkillEntry{},
	}
}

// Normalize replaces nil lists with empty ones so the JSON form is stable.
func (r Record) Normalize() Record {
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Skills == nil {
		r.Skills = []SkillEntry{}
	}
	return r
}
