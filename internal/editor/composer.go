package editor

import "resumeBuilder/internal/resume"

// Composer binds the section editors to a session. Every onChange from a
// section editor lands as a field-scoped replace on the session, so editing
// one section never touches the others.
type Composer struct {
	ids  resume.IDGenerator
	next Session
}

func NewComposer(ids resume.IDGenerator, cur Session) *Composer {
	return &Composer{ids: ids, next: cur}
}

// Current is the session with all edits applied so far.
func (c *Composer) Current() Session { return c.next }

func (c *Composer) Personal() *resume.PersonalInfoEditor {
	return resume.NewPersonalInfoEditor(func(p resume.PersonalInfo) {
		c.next = c.next.WithPersonalInfo(p)
	})
}

func (c *Composer) Experience() *resume.ListEditor[resume.ExperienceEntry] {
	return resume.NewExperienceEditor(c.ids, func(v []resume.ExperienceEntry) {
		c.next = c.next.WithExperience(v)
	})
}

func (c *Composer) Education() *resume.ListEditor[resume.EducationEntry] {
	return resume.NewEducationEditor(c.ids, func(v []resume.EducationEntry) {
		c.next = c.next.WithEducation(v)
	})
}

func (c *Composer) Skills() *resume.ListEditor[resume.SkillEntry] {
	return resume.NewSkillsEditor(c.ids, func(v []resume.SkillEntry) {
		c.next = c.next.WithSkills(v)
	})
}

func (c *Composer) SetTab(t Tab) { c.next.ActiveTab = t }

func (c *Composer) SetProfession(p string) { c.next.Profession = p }

func (c *Composer) ReplaceRecord(r resume.Record) { c.next = c.next.WithRecord(r) }

// EmptyStates returns the guidance message of every list section that is
// currently empty, keyed by its tab.
func (c *Composer) EmptyStates() map[Tab]string {
	rec := c.next.Record
	empty := map[Tab]string{}
	if len(rec.Experience) == 0 {
		empty[TabExperience] = c.Experience().EmptyMessage()
	}
	if len(rec.Education) == 0 {
		empty[TabEducation] = c.Education().EmptyMessage()
	}
	if len(rec.Skills) == 0 {
		empty[TabSkills] = c.Skills().EmptyMessage()
	}
	return empty
}
