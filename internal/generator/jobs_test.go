package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/resume"
)

func TestSummaryPrompt(t *testing.T) {
	info := resume.PersonalInfo{FullName: "Jane Doe", Email: "jane@x.io", Location: "Berlin"}
	assert.Equal(t, "Name: Jane Doe, Email: jane@x.io, Location: Berlin", SummaryPrompt(info))

	info.Website = "jane.dev"
	info.LinkedIn = "in/jane"
	assert.Equal(t, "Name: Jane Doe, Email: jane@x.io, Location: Berlin, Website: jane.dev, LinkedIn: in/jane", SummaryPrompt(info))
}

func TestExperiencePrompt(t *testing.T) {
	e := resume.ExperienceEntry{ID: "e1", Position: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "2021-01", Current: true}
	assert.Equal(t, "Position: Engineer, Company: Acme, Period: 2020-01 - Present", ExperiencePrompt(e))

	e.Description = "Built billing."
	e.Location = "Remote"
	assert.Equal(t, "Position: Engineer, Company: Acme, Location: Remote, Period: 2020-01 - Present. Existing notes: Built billing.", ExperiencePrompt(e))
}

func TestJobPreconditions(t *testing.T) {
	assert.Equal(t, []string{"position", "company"}, ExperienceJob(resume.ExperienceEntry{ID: "e1"}).Missing)
	assert.Equal(t, []string{"company"}, ExperienceJob(resume.ExperienceEntry{ID: "e1", Position: "Dev"}).Missing)
	assert.Empty(t, ExperienceJob(resume.ExperienceEntry{ID: "e1", Position: "Dev", Company: "Acme"}).Missing)

	assert.Equal(t, []string{"profession"}, SkillsJob("  ").Missing)
	assert.Equal(t, "Nursing", SkillsJob(" Nursing ").Prompt)

	assert.Equal(t, []string{"text"}, ImproveJob(FieldSummary, "").Missing)
	assert.Equal(t, completion.TypeImprove, ImproveJob(FieldSummary, "x").Type)
}

func TestJobFieldKeys(t *testing.T) {
	assert.Equal(t, "experience:e1", ExperienceJob(resume.ExperienceEntry{ID: "e1"}).Field)
	assert.Equal(t, FieldSummary, SummaryJob(resume.PersonalInfo{}).Field)
	assert.Equal(t, FieldSkills, SkillsJob("x").Field)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Patient Care", "Charting", "IV Therapy"}, ParseSkills("Patient Care, Charting, IV Therapy"))
	assert.Equal(t, []string{"Go", "SQL"}, ParseSkills(" Go ,, \n- SQL."))
	assert.Empty(t, ParseSkills(" , "))
}
