package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeBuilder/internal/resume"
)

func TestComposerAccumulatesEdits(t *testing.T) {
	cur := NewSession()
	cur.Record.Skills = []resume.SkillEntry{{ID: "s1", Name: "Go", Level: resume.LevelExpert}}
	c := NewComposer(resume.NewSequenceGenerator("x"), cur)

	c.Personal().Update(c.Current().Record.PersonalInfo, resume.SetFullName("Jane"))
	c.Experience().Add(c.Current().Record.Experience)
	c.Experience().Add(c.Current().Record.Experience)

	next := c.Current()
	assert.Equal(t, "Jane", next.Record.PersonalInfo.FullName)
	assert.Len(t, next.Record.Experience, 2)
	assert.Equal(t, cur.Record.Skills, next.Record.Skills)
	assert.Empty(t, cur.Record.Experience, "the input session is not modified")
}

func TestWithSectionReplacesOnlyThatSection(t *testing.T) {
	s := NewSession()
	s.Record.PersonalInfo.FullName = "Jane"
	s.Record.Education = []resume.EducationEntry{{ID: "d1"}}

	next := s.WithSkills([]resume.SkillEntry{{ID: "s1"}})

	assert.Equal(t, s.Record.PersonalInfo, next.Record.PersonalInfo)
	assert.Equal(t, s.Record.Education, next.Record.Education)
	assert.Equal(t, s.Record.Experience, next.Record.Experience)
	assert.Empty(t, s.Record.Skills)
	assert.Len(t, next.Record.Skills, 1)
}

func TestEmptyStatesListsOnlyEmptySections(t *testing.T) {
	s := NewSession()
	assert.Equal(t, map[Tab]string{
		TabExperience: resume.EmptyExperienceMessage,
		TabEducation:  resume.EmptyEducationMessage,
		TabSkills:     resume.EmptySkillsMessage,
	}, NewComposer(resume.NewSequenceGenerator("x"), s).EmptyStates())

	c := NewComposer(resume.NewSequenceGenerator("x"), s)
	c.Skills().Add(c.Current().Record.Skills)
	got := c.EmptyStates()
	assert.NotContains(t, got, TabSkills)
	assert.Len(t, got, 2)
}
