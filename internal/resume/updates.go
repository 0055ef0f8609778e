package resume

import "strings"

// Typed updates. Each returns a copy of its input with one field replaced.
type (
	PersonalInfoUpdate func(PersonalInfo) PersonalInfo
	ExperienceUpdate   func(ExperienceEntry) ExperienceEntry
	EducationUpdate    func(EducationEntry) EducationEntry
	SkillUpdate        func(SkillEntry) SkillEntry
)

func SetFullName(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.FullName = v; return p }
}

func SetEmail(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.Email = v; return p }
}

func SetPhone(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.Phone = v; return p }
}

func SetPersonalLocation(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.Location = v; return p }
}

func SetWebsite(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.Website = v; return p }
}

func SetLinkedIn(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.LinkedIn = v; return p }
}

func SetSummary(v string) PersonalInfoUpdate {
	return func(p PersonalInfo) PersonalInfo { p.Summary = v; return p }
}

func SetCompany(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.Company = v; return e }
}

func SetPosition(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.Position = v; return e }
}

func SetExperienceLocation(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.Location = v; return e }
}

func SetExperienceStart(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.StartDate = v; return e }
}

func SetExperienceEnd(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.EndDate = v; return e }
}

func SetCurrent(v bool) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.Current = v; return e }
}

func SetDescription(v string) ExperienceUpdate {
	return func(e ExperienceEntry) ExperienceEntry { e.Description = v; return e }
}

func SetSchool(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.School = v; return e }
}

func SetDegree(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.Degree = v; return e }
}

func SetField(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.Field = v; return e }
}

func SetEducationStart(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.StartDate = v; return e }
}

func SetEducationEnd(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.EndDate = v; return e }
}

func SetGPA(v string) EducationUpdate {
	return func(e EducationEntry) EducationEntry { e.GPA = v; return e }
}

func SetSkillName(v string) SkillUpdate {
	return func(s SkillEntry) SkillEntry { s.Name = v; return s }
}

func SetSkillLevel(v SkillLevel) SkillUpdate {
	return func(s SkillEntry) SkillEntry { s.Level = v; return s }
}

// PersonalInfoPatch 是 PATCH 请求体，nil 字段保持不变。
type PersonalInfoPatch struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
	LinkedIn *string `json:"linkedin"`
	Summary  *string `json:"summary"`
}

func (p PersonalInfoPatch) Apply(info PersonalInfo) PersonalInfo {
	setString(&info.FullName, p.FullName)
	setString(&info.Email, p.Email)
	setString(&info.Phone, p.Phone)
	setString(&info.Location, p.Location)
	setString(&info.Website, p.Website)
	setString(&info.LinkedIn, p.LinkedIn)
	setString(&info.Summary, p.Summary)
	return info
}

type ExperiencePatch struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Location    *string `json:"location"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Current     *bool   `json:"current"`
	Description *string `json:"description"`
}

func (p ExperiencePatch) Apply(e ExperienceEntry) ExperienceEntry {
	setString(&e.Company, p.Company)
	setString(&e.Position, p.Position)
	setString(&e.Location, p.Location)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.Description, p.Description)
	if p.Current != nil {
		e.Current = *p.Current
	}
	return e
}

type EducationPatch struct {
	School    *string `json:"school"`
	Degree    *string `json:"degree"`
	Field     *string `json:"field"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	GPA       *string `json:"gpa"`
}

func (p EducationPatch) Apply(e EducationEntry) EducationEntry {
	setString(&e.School, p.School)
	setString(&e.Degree, p.Degree)
	setString(&e.Field, p.Field)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.GPA, p.GPA)
	return e
}

type SkillPatch struct {
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

// Validate checks the level before Apply; Apply assumes a valid patch.
func (p SkillPatch) Validate() error {
	if p.Level == nil {
		return nil
	}
	_, err := ParseSkillLevel(*p.Level)
	return err
}

func (p SkillPatch) Apply(s SkillEntry) SkillEntry {
	setString(&s.Name, p.Name)
	if p.Level != nil {
		if level, err := ParseSkillLevel(*p.Level); err == nil {
			s.Level = level
		}
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
