// Package editor composes section edits into whole-record replacements for a session.
package editor

import (
	"context"
	"errors"
	"fmt"

	"resumeBuilder/internal/resume"
)

// Tab 是编辑器当前激活的分区。
type Tab string

const (
	TabPersonal   Tab = "personal"
	TabExperience Tab = "experience"
	TabEducation  Tab = "education"
	TabSkills     Tab = "skills"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabPersonal, TabExperience, TabEducation, TabSkills:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidTab      = errors.New("invalid tab")
)

// Session is one editing session: the record plus editor-only state.
// Profession is the draft input for skills generation and is not part of the record.
type Session struct {
	Record     resume.Record `json:"record"`
	ActiveTab  Tab           `json:"activeTab"`
	Profession string        `json:"profession"`
}

func NewSession() Session {
	return Session{Record: resume.NewRecord(), ActiveTab: TabPersonal}
}

// Field-scoped replaces. Each returns a new Session with one section swapped.

func (s Session) WithPersonalInfo(p resume.PersonalInfo) Session {
	s.Record.PersonalInfo = p
	return s
}

func (s Session) WithExperience(v []resume.ExperienceEntry) Session {
	s.Record.Experience = v
	return s
}

func (s Session) WithEducation(v []resume.EducationEntry) Session {
	s.Record.Education = v
	return s
}

func (s Session) WithSkills(v []resume.SkillEntry) Session {
	s.Record.Skills = v
	return s
}

func (s Session) WithRecord(r resume.Record) Session {
	s.Record = r.Normalize()
	return s
}

// Store persists sessions. Update must apply fn atomically per id; fn may be
// called more than once when a concurrent write wins.
type Store interface {
	Create(ctx context.Context, id string, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, id string, fn func(Session) (Session, error)) (Session, error)
}
