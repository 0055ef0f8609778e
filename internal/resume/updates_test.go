package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestExperiencePatchApply(t *testing.T) {
	entry := ExperienceEntry{ID: "e1", Company: "Acme", Position: "Dev", EndDate: "2022-01"}

	got := ExperiencePatch{Position: ptr("Lead"), Current: ptr(true)}.Apply(entry)

	assert.Equal(t, ExperienceEntry{ID: "e1", Company: "Acme", Position: "Lead", EndDate: "2022-01", Current: true}, got)
}

func TestEducationPatchApplyClearsWithEmptyString(t *testing.T) {
	entry := EducationEntry{ID: "d1", School: "MIT", GPA: "3.9"}

	got := EducationPatch{GPA: ptr("")}.Apply(entry)

	assert.Equal(t, "", got.GPA)
	assert.Equal(t, "MIT", got.School)
}

func TestSkillPatch(t *testing.T) {
	require.NoError(t, SkillPatch{Level: ptr("expert")}.Validate())

	err := SkillPatch{Level: ptr("Guru")}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidSkillLevel))

	got := SkillPatch{Name: ptr("Go"), Level: ptr("advanced")}.Apply(SkillEntry{ID: "s", Level: LevelBeginner})
	assert.Equal(t, SkillEntry{ID: "s", Name: "Go", Level: LevelAdvanced}, got)
}

func TestPersonalInfoPatch(t *testing.T) {
	got := PersonalInfoPatch{FullName: ptr("Jane Doe"), LinkedIn: ptr("in/jane")}.Apply(PersonalInfo{Email: "j@x.io"})
	assert.Equal(t, PersonalInfo{FullName: "Jane Doe", Email: "j@x.io", LinkedIn: "in/jane"}, got)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" Go "))
}
