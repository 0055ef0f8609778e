// Package preview turns a resume record into a display document and HTML.
package preview

import (
	"strings"

	"resumeBuilder/internal/resume"
)

const (
	DefaultName = "Your Name"
	present     = "Present"
)

// Icon keys for contact entries.
const (
	IconMail     = "mail"
	IconPhone    = "phone"
	IconMapPin   = "map-pin"
	IconGlobe    = "globe"
	IconLinkedIn = "linkedin"
)

type Contact struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
}

// Section is a titled list. Visible is false when the underlying list is empty.
type Section[T any] struct {
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
	Items   []T    `json:"items"`
}

type ExperienceItem struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Dates       string `json:"dates"`
	Description string `json:"description,omitempty"`
}

type EducationItem struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	School  string `json:"school"`
	GPA     string `json:"gpa,omitempty"`
	Dates   string `json:"dates"`
}

type SkillItem struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Level resume.SkillLevel `json:"level"`
	Label string            `json:"label"`
}

// Document is the rendered form of a record, independent of output format.
type Document struct {
	Name       string                  `json:"name"`
	Contacts   []Contact               `json:"contacts"`
	Summary    string                  `json:"summary,omitempty"`
	Experience Section[ExperienceItem] `json:"experience"`
	Education  Section[EducationItem]  `json:"education"`
	Skills     Section[SkillItem]      `json:"skills"`
}

// Render 根据简历生成预览文档，不产生副作用。
func Render(rec resume.Record) Document {
	info := rec.PersonalInfo
	doc := Document{
		Name:     info.FullName,
		Contacts: contacts(info),
		Summary:  info.Summary,
		Experience: Section[ExperienceItem]{
			Title:   "Experience",
			Visible: len(rec.Experience) > 0,
			Items:   make([]ExperienceItem, 0, len(rec.Experience)),
		},
		Education: Section[EducationItem]{
			Title:   "Education",
			Visible: len(rec.Education) > 0,
			Items:   make([]EducationItem, 0, len(rec.Education)),
		},
		Skills: Section[SkillItem]{
			Title:   "Skills",
			Visible: len(rec.Skills) > 0,
			Items:   make([]SkillItem, 0, len(rec.Skills)),
		},
	}
	if doc.Name == "" {
		doc.Name = DefaultName
	}

	for _, e := range rec.Experience {
		doc.Experience.Items = append(doc.Experience.Items, ExperienceItem{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Location:    e.Location,
			Dates:       experienceDates(e),
			Description: e.Description,
		})
	}
	for _, e := range rec.Education {
		item := EducationItem{
			ID:      e.ID,
			Heading: e.Degree + " in " + e.Field,
			School:  e.School,
			Dates:   e.StartDate + " - " + e.EndDate,
		}
		if e.GPA != "" {
			item.GPA = "GPA: " + e.GPA
		}
		doc.Education.Items = append(doc.Education.Items, item)
	}
	for _, s := range rec.Skills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		doc.Skills.Items = append(doc.Skills.Items, SkillItem{
			ID:    s.ID,
			Name:  s.Name,
			Level: s.Level,
			Label: s.Name + " — " + string(s.Level),
		})
	}
	return doc
}

// experienceDates formats the range; a current role always ends in "Present".
func experienceDates(e resume.ExperienceEntry) string {
	end := e.EndDate
	if e.Current {
		end = present
	}
	return e.StartDate + " - " + end
}

func contacts(info resume.PersonalInfo) []Contact {
	candidates := []Contact{
		{Icon: IconMail, Value: info.Email},
		{Icon: IconPhone, Value: info.Phone},
		{Icon: IconMapPin, Value: info.Location},
		{Icon: IconGlobe, Value: info.Website},
		{Icon: IconLinkedIn, Value: info.LinkedIn},
	}
	out := make([]Contact, 0, len(candidates))
	for _, c := range candidates {
		if c.Value != "" {
			out = append(out, c)
		}
	}
	return out
}
