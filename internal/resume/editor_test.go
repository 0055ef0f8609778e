package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constGenerator string

func (g constGenerator) NewID() string { return string(g) }

func TestListEditorAddAppendsFreshEntry(t *testing.T) {
	var reported []ExperienceEntry
	ed := NewExperienceEditor(NewSequenceGenerator("exp"), func(v []ExperienceEntry) { reported = v })

	original := []ExperienceEntry{{ID: "a", Company: "Acme"}}
	next := ed.Add(original)

	require.Len(t, next, 2)
	assert.Equal(t, original[0], next[0])
	assert.Equal(t, ExperienceEntry{ID: "exp-1"}, next[1])
	assert.False(t, next[1].Current)
	assert.Equal(t, next, reported)
	assert.Len(t, original, 1, "input slice must not grow")
}

func TestListEditorAddSkillDefaultsToIntermediate(t *testing.T) {
	ed := NewSkillsEditor(NewSequenceGenerator("s"), nil)
	next := ed.Add(nil)
	require.Len(t, next, 1)
	assert.Equal(t, LevelIntermediate, next[0].Level)
	assert.Equal(t, "", next[0].Name)
}

func TestListEditorAddAvoidsTakenIDs(t *testing.T) {
	ed := NewEducationEditor(constGenerator("dup"), nil)
	data := []EducationEntry{{ID: "dup"}, {ID: "dup-2"}}

	next := ed.Add(data)
	require.Len(t, next, 3)
	assert.Equal(t, "dup-3", next[2].ID)
}

func TestListEditorUpdateTouchesOnlyTarget(t *testing.T) {
	calls := 0
	ed := NewExperienceEditor(NewSequenceGenerator("exp"), func([]ExperienceEntry) { calls++ })
	data := []ExperienceEntry{{ID: "a", Company: "A"}, {ID: "b", Company: "B"}, {ID: "c", Company: "C"}}

	next := ed.Update(data, "b", SetCompany("Beta"))

	require.Len(t, next, 3)
	assert.Equal(t, "A", next[0].Company)
	assert.Equal(t, "Beta", next[1].Company)
	assert.Equal(t, "C", next[2].Company)
	assert.Equal(t, "B", data[1].Company, "input must stay untouched")
	assert.Equal(t, 1, calls)
}

func TestListEditorUpdateUnknownIDIsNoop(t *testing.T) {
	calls := 0
	ed := NewSkillsEditor(NewSequenceGenerator("s"), func([]SkillEntry) { calls++ })
	data := []SkillEntry{{ID: "a", Name: "Go", Level: LevelExpert}}

	next := ed.Update(data, "missing", SetSkillName("Rust"))

	assert.Equal(t, data, next)
	assert.Same(t, &data[0], &next[0])
	assert.Zero(t, calls)
}

func TestListEditorRemove(t *testing.T) {
	ed := NewEducationEditor(NewSequenceGenerator("edu"), nil)
	data := []EducationEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	next := ed.Remove(data, "b")
	assert.Equal(t, []EducationEntry{{ID: "a"}, {ID: "c"}}, next)
	assert.Len(t, data, 3)

	again := ed.Remove(next, "b")
	assert.Equal(t, next, again)
}

func TestListEditorAddMany(t *testing.T) {
	calls := 0
	ed := NewSkillsEditor(NewSequenceGenerator("s"), func([]SkillEntry) { calls++ })
	data := []SkillEntry{{ID: "s-1", Name: "Go", Level: LevelExpert}}

	next := ed.AddMany(data, SetSkillName("Charting"), SetSkillName("IV Therapy"))

	require.Len(t, next, 3)
	assert.Equal(t, "Charting", next[1].Name)
	assert.Equal(t, LevelIntermediate, next[1].Level)
	assert.Equal(t, "IV Therapy", next[2].Name)
	assert.NotEqual(t, next[1].ID, next[2].ID)
	assert.NotEqual(t, "s-1", next[1].ID)
	assert.Equal(t, 1, calls)
}

func TestEmptyMessages(t *testing.T) {
	assert.Equal(t, `No experience added yet. Click "Add Experience" to get started.`,
		NewExperienceEditor(nil, nil).EmptyMessage())
	assert.Equal(t, `No skills added yet. Click "Add Skill" to get started.`,
		NewSkillsEditor(nil, nil).EmptyMessage())
}

func TestPersonalInfoEditor(t *testing.T) {
	var got PersonalInfo
	ed := NewPersonalInfoEditor(func(p PersonalInfo) { got = p })

	info := ed.Update(PersonalInfo{FullName: "Ada"}, SetEmail("ada@example.com"), SetSummary("Engineer"))

	assert.Equal(t, PersonalInfo{FullName: "Ada", Email: "ada@example.com", Summary: "Engineer"}, info)
	assert.Equal(t, info, got)
}

func TestUUIDGenerator(t *testing.T) {
	g := UUIDGenerator{}
	assert.NotEqual(t, g.NewID(), g.NewID())
}
