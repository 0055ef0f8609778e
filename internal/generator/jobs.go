package generator

import (
	"context"
	"strings"

	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/resume"
)

// Field keys. One generation may be pending per key.
const (
	FieldSummary = "summary"
	FieldSkills  = "skills"
)

func ExperienceField(entryID string) string { return "experience:" + entryID }

// Message is the title/description pair of a notification.
type Message struct {
	Title       string
	Description string
}

// Job 描述一次生成：目标字段、提示词、前置条件与结果写回方式。
type Job struct {
	Field   string
	Type    completion.Type
	Prompt  string
	Missing []string

	MissingMessage Message
	Success        Message
	Failure        Message

	// Apply writes the generated text back through the normal edit path.
	Apply func(ctx context.Context, text string) error
}

// SummaryJob requires a full name.
func SummaryJob(info resume.PersonalInfo) Job {
	job := Job{
		Field:          FieldSummary,
		Type:           completion.TypeSummary,
		Prompt:         SummaryPrompt(info),
		MissingMessage: Message{"Missing Information", "Please enter your full name before generating a summary."},
		Success:        Message{"Summary Generated", "AI has created a professional summary for you."},
		Failure:        Message{"Error", "Failed to generate summary. Please try again."},
	}
	if resume.IsBlank(info.FullName) {
		job.Missing = append(job.Missing, "fullName")
	}
	return job
}

// ExperienceJob requires position and company.
func ExperienceJob(e resume.ExperienceEntry) Job {
	job := Job{
		Field:          ExperienceField(e.ID),
		Type:           completion.TypeExperience,
		Prompt:         ExperiencePrompt(e),
		MissingMessage: Message{"Missing Information", "Please enter a position and company before generating a description."},
		Success:        Message{"Description Generated", "AI has written a job description for this role."},
		Failure:        Message{"Error", "Failed to generate description. Please try again."},
	}
	if resume.IsBlank(e.Position) {
		job.Missing = append(job.Missing, "position")
	}
	if resume.IsBlank(e.Company) {
		job.Missing = append(job.Missing, "company")
	}
	return job
}

// SkillsJob requires a profession.
func SkillsJob(profession string) Job {
	job := Job{
		Field:          FieldSkills,
		Type:           completion.TypeSkills,
		Prompt:         strings.TrimSpace(profession),
		MissingMessage: Message{"Missing Information", "Please enter a profession before generating skills."},
		Success:        Message{"Skills Generated", "Suggested skills were added to your list."},
		Failure:        Message{"Error", "Failed to generate skills. Please try again."},
	}
	if resume.IsBlank(profession) {
		job.Missing = append(job.Missing, "profession")
	}
	return job
}

// ImproveJob rewrites existing text held under field.
func ImproveJob(field, text string) Job {
	job := Job{
		Field:          field,
		Type:           completion.TypeImprove,
		Prompt:         text,
		MissingMessage: Message{"Missing Information", "There is no text to improve yet."},
		Success:        Message{"Content Improved", "AI has polished your text."},
		Failure:        Message{"Error", "Failed to improve content. Please try again."},
	}
	if resume.IsBlank(text) {
		job.Missing = append(job.Missing, "text")
	}
	return job
}

// SummaryPrompt lists the contact details; website and linkedin only when set.
func SummaryPrompt(info resume.PersonalInfo) string {
	var sb strings.Builder
	sb.WriteString("Name: " + info.FullName)
	sb.WriteString(", Email: " + info.Email)
	sb.WriteString(", Location: " + info.Location)
	if info.Website != "" {
		sb.WriteString(", Website: " + info.Website)
	}
	if info.LinkedIn != "" {
		sb.WriteString(", LinkedIn: " + info.LinkedIn)
	}
	return sb.String()
}

func ExperiencePrompt(e resume.ExperienceEntry) string {
	var sb strings.Builder
	sb.WriteString("Position: " + e.Position)
	sb.WriteString(", Company: " + e.Company)
	if e.Location != "" {
		sb.WriteString(", Location: " + e.Location)
	}
	if e.StartDate != "" {
		end := e.EndDate
		if e.Current {
			end = "Present"
		}
		sb.WriteString(", Period: " + e.StartDate + " - " + end)
	}
	if d := strings.TrimSpace(e.Description); d != "" {
		sb.WriteString(". Existing notes: " + d)
	}
	return sb.String()
}

// ParseSkills splits a comma-separated answer into trimmed, non-empty names.
func ParseSkills(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		name = strings.TrimLeft(name, "-*• ")
		name = strings.TrimSuffix(strings.TrimSpace(name), ".")
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
