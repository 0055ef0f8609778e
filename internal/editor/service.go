package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"resumeBuilder/internal/generator"
	"resumeBuilder/internal/notify"
	"resumeBuilder/internal/resume"
)

// Service 负责会话的读取、编辑与 AI 生成写回。
type Service struct {
	store  Store
	ids    resume.IDGenerator
	gen    *generator.Generator
	logger *slog.Logger
}

func NewService(store Store, ids resume.IDGenerator, gen *generator.Generator, logger *slog.Logger) *Service {
	if ids == nil {
		ids = resume.UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, ids: ids, gen: gen, logger: logger}
}

// Create starts a session with an empty record.
func (s *Service) Create(ctx context.Context) (string, Session, error) {
	id := uuid.NewString()
	sess := NewSession()
	if err := s.store.Create(ctx, id, sess); err != nil {
		return "", Session{}, fmt.Errorf("create session: %w", err)
	}
	return id, sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Get(ctx, id)
}

// edit runs fn against a Composer inside the store's atomic update.
func (s *Service) edit(ctx context.Context, id string, fn func(c *Composer) error) (Session, error) {
	return s.store.Update(ctx, id, func(cur Session) (Session, error) {
		c := NewComposer(s.ids, cur)
		if err := fn(c); err != nil {
			return Session{}, err
		}
		return c.Current(), nil
	})
}

func (s *Service) SetTab(ctx context.Context, id string, tab Tab) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.SetTab(tab)
		return nil
	})
}

func (s *Service) UpdatePersonal(ctx context.Context, id string, upds ...resume.PersonalInfoUpdate) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.Personal().Update(c.Current().Record.PersonalInfo, upds...)
		return nil
	})
}

func (s *Service) AddExperience(ctx context.Context, id string) (Session, resume.ExperienceEntry, error) {
	sess, err := s.edit(ctx, id, func(c *Composer) error {
		c.Experience().Add(c.Current().Record.Experience)
		return nil
	})
	if err != nil {
		return Session{}, resume.ExperienceEntry{}, err
	}
	return sess, sess.Record.Experience[len(sess.Record.Experience)-1], nil
}

// UpdateExperience fails with ErrEntryNotFound and writes nothing when entryID is unknown.
func (s *Service) UpdateExperience(ctx context.Context, id, entryID string, upd resume.ExperienceUpdate) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		data := c.Current().Record.Experience
		if !resume.Contains(data, entryID) {
			return ErrEntryNotFound
		}
		c.Experience().Update(data, entryID, upd)
		return nil
	})
}

func (s *Service) RemoveExperience(ctx context.Context, id, entryID string) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.Experience().Remove(c.Current().Record.Experience, entryID)
		return nil
	})
}

func (s *Service) AddEducation(ctx context.Context, id string) (Session, resume.EducationEntry, error) {
	sess, err := s.edit(ctx, id, func(c *Composer) error {
		c.Education().Add(c.Current().Record.Education)
		return nil
	})
	if err != nil {
		return Session{}, resume.EducationEntry{}, err
	}
	return sess, sess.Record.Education[len(sess.Record.Education)-1], nil
}

func (s *Service) UpdateEducation(ctx context.Context, id, entryID string, upd resume.EducationUpdate) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		data := c.Current().Record.Education
		if !resume.Contains(data, entryID) {
			return ErrEntryNotFound
		}
		c.Education().Update(data, entryID, upd)
		return nil
	})
}

func (s *Service) RemoveEducation(ctx context.Context, id, entryID string) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.Education().Remove(c.Current().Record.Education, entryID)
		return nil
	})
}

func (s *Service) AddSkill(ctx context.Context, id string) (Session, resume.SkillEntry, error) {
	sess, err := s.edit(ctx, id, func(c *Composer) error {
		c.Skills().Add(c.Current().Record.Skills)
		return nil
	})
	if err != nil {
		return Session{}, resume.SkillEntry{}, err
	}
	return sess, sess.Record.Skills[len(sess.Record.Skills)-1], nil
}

func (s *Service) UpdateSkill(ctx context.Context, id, entryID string, upd resume.SkillUpdate) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		data := c.Current().Record.Skills
		if !resume.Contains(data, entryID) {
			return ErrEntryNotFound
		}
		c.Skills().Update(data, entryID, upd)
		return nil
	})
}

func (s *Service) RemoveSkill(ctx context.Context, id, entryID string) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.Skills().Remove(c.Current().Record.Skills, entryID)
		return nil
	})
}

func (s *Service) SetProfession(ctx context.Context, id, profession string) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.SetProfession(profession)
		return nil
	})
}

// ReplaceRecord swaps the whole record, used by import and snapshot restore.
func (s *Service) ReplaceRecord(ctx context.Context, id string, rec resume.Record) (Session, error) {
	return s.edit(ctx, id, func(c *Composer) error {
		c.ReplaceRecord(rec)
		return nil
	})
}

// GenerateSummary writes an AI summary into personalInfo.summary.
func (s *Service) GenerateSummary(ctx context.Context, id string) (Session, notify.Notification, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, notify.Notification{}, err
	}
	job := generator.SummaryJob(cur.Record.PersonalInfo)
	job.Apply = s.applySummary(id)
	return s.run(ctx, id, job)
}

// ImproveSummary rewrites the existing summary.
func (s *Service) ImproveSummary(ctx context.Context, id string) (Session, notify.Notification, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, notify.Notification{}, err
	}
	job := generator.ImproveJob(generator.FieldSummary, cur.Record.PersonalInfo.Summary)
	job.Apply = s.applySummary(id)
	return s.run(ctx, id, job)
}

// GenerateExperience writes an AI description into one experience entry.
// If the entry is removed while the request is in flight the result is dropped.
func (s *Service) GenerateExperience(ctx context.Context, id, entryID string) (Session, notify.Notification, error) {
	entry, err := s.experienceEntry(ctx, id, entryID)
	if err != nil {
		return Session{}, notify.Notification{}, err
	}
	job := generator.ExperienceJob(entry)
	job.Apply = s.applyDescription(id, entryID)
	return s.run(ctx, id, job)
}

func (s *Service) ImproveExperience(ctx context.Context, id, entryID string) (Session, notify.Notification, error) {
	entry, err := s.experienceEntry(ctx, id, entryID)
	if err != nil {
		return Session{}, notify.Notification{}, err
	}
	job := generator.ImproveJob(generator.ExperienceField(entryID), entry.Description)
	job.Apply = s.applyDescription(id, entryID)
	return s.run(ctx, id, job)
}

// GenerateSkills appends one Intermediate skill per suggested name in a single
// batch and clears the profession draft.
func (s *Service) GenerateSkills(ctx context.Context, id string) (Session, notify.Notification, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, notify.Notification{}, err
	}
	job := generator.SkillsJob(cur.Profession)
	job.Apply = func(ctx context.Context, text string) error {
		names := generator.ParseSkills(text)
		if len(names) == 0 {
			return errors.New("no skills in response")
		}
		inits := make([]func(resume.SkillEntry) resume.SkillEntry, 0, len(names))
		for _, name := range names {
			inits = append(inits, resume.SetSkillName(name))
		}
		_, err := s.edit(ctx, id, func(c *Composer) error {
			c.Skills().AddMany(c.Current().Record.Skills, inits...)
			c.SetProfession("")
			return nil
		})
		return err
	}
	return s.run(ctx, id, job)
}

// Generating lists the fields of the session with a generation in flight.
func (s *Service) Generating(ctx context.Context, id string, sess Session) ([]string, error) {
	fields := []string{generator.FieldSummary, generator.FieldSkills}
	for _, e := range sess.Record.Experience {
		fields = append(fields, generator.ExperienceField(e.ID))
	}
	pending := make([]string, 0)
	for _, f := range fields {
		state, err := s.gen.State(ctx, id, f)
		if err != nil {
			return nil, err
		}
		if state == generator.StatePending {
			pending = append(pending, f)
		}
	}
	return pending, nil
}

func (s *Service) run(ctx context.Context, id string, job generator.Job) (Session, notify.Notification, error) {
	n, runErr := s.gen.Run(ctx, id, job)
	latest, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, n, err
	}
	return latest, n, runErr
}

func (s *Service) experienceEntry(ctx context.Context, id, entryID string) (resume.ExperienceEntry, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return resume.ExperienceEntry{}, err
	}
	entry, ok := resume.Find(cur.Record.Experience, entryID)
	if !ok {
		return resume.ExperienceEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *Service) applySummary(id string) func(context.Context, string) error {
	return func(ctx context.Context, text string) error {
		_, err := s.UpdatePersonal(ctx, id, resume.SetSummary(text))
		return err
	}
}

func (s *Service) applyDescription(id, entryID string) func(context.Context, string) error {
	return func(ctx context.Context, text string) error {
		_, err := s.edit(ctx, id, func(c *Composer) error {
			c.Experience().Update(c.Current().Record.Experience, entryID, resume.SetDescription(text))
			return nil
		})
		return err
	}
}
