package resume

// Entry is a list element addressed by a stable id.
type Entry interface {
	EntryID() string
}

// ListEditor 对简历中的一个列表提供增删改操作。
// 所有操作都返回新切片，不修改传入的切片。
type ListEditor[T Entry] struct {
	ids      IDGenerator
	newEntry func(id string) T
	onChange func([]T)
	empty    string
}

// NewListEditor builds an editor. onChange may be nil.
func NewListEditor[T Entry](ids IDGenerator, newEntry func(id string) T, onChange func([]T), emptyMessage string) *ListEditor[T] {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &ListEditor[T]{ids: ids, newEntry: newEntry, onChange: onChange, empty: emptyMessage}
}

// Add appends a blank entry with a fresh id.
func (e *ListEditor[T]) Add(data []T) []T {
	next := make([]T, 0, len(data)+1)
	next = append(next, data...)
	next = append(next, e.newEntry(uniqueID(e.ids, idSet(data))))
	e.changed(next)
	return next
}

// AddMany appends one blank entry per init function, each passed through its
// init, and reports a single change for the whole batch.
func (e *ListEditor[T]) AddMany(data []T, inits ...func(T) T) []T {
	if len(inits) == 0 {
		return data
	}
	taken := idSet(data)
	next := make([]T, 0, len(data)+len(inits))
	next = append(next, data...)
	for _, init := range inits {
		id := uniqueID(e.ids, taken)
		taken[id] = struct{}{}
		next = append(next, init(e.newEntry(id)))
	}
	e.changed(next)
	return next
}

// Update replaces the entry with id by upd(entry). An unknown id returns data as is.
func (e *ListEditor[T]) Update(data []T, id string, upd func(T) T) []T {
	idx := indexOf(data, id)
	if idx < 0 || upd == nil {
		return data
	}
	next := make([]T, len(data))
	copy(next, data)
	next[idx] = upd(next[idx])
	e.changed(next)
	return next
}

// Remove drops the entry with id. Removing an unknown id returns data as is.
func (e *ListEditor[T]) Remove(data []T, id string) []T {
	idx := indexOf(data, id)
	if idx < 0 {
		return data
	}
	next := make([]T, 0, len(data)-1)
	next = append(next, data[:idx]...)
	next = append(next, data[idx+1:]...)
	e.changed(next)
	return next
}

// EmptyMessage is the guidance shown while the list has no entries.
func (e *ListEditor[T]) EmptyMessage() string { return e.empty }

func (e *ListEditor[T]) changed(next []T) {
	if e.onChange != nil {
		e.onChange(next)
	}
}

// Contains reports whether data holds an entry with id.
func Contains[T Entry](data []T, id string) bool {
	return indexOf(data, id) >= 0
}

// Find returns the entry with id.
func Find[T Entry](data []T, id string) (T, bool) {
	if idx := indexOf(data, id); idx >= 0 {
		return data[idx], true
	}
	var zero T
	return zero, false
}

func indexOf[T Entry](data []T, id string) int {
	for i, entry := range data {
		if entry.EntryID() == id {
			return i
		}
	}
	return -1
}

func idSet[T Entry](data []T) map[string]struct{} {
	set := make(map[string]struct{}, len(data))
	for _, entry := range data {
		set[entry.EntryID()] = struct{}{}
	}
	return set
}

const (
	EmptyExperienceMessage = `No experience added yet. Click "Add Experience" to get started.`
	EmptyEducationMessage  = `No education added yet. Click "Add Education" to get started.`
	EmptySkillsMessage     = `No skills added yet. Click "Add Skill" to get started.`
)

func NewExperienceEditor(ids IDGenerator, onChange func([]ExperienceEntry)) *ListEditor[ExperienceEntry] {
	return NewListEditor(ids, func(id string) ExperienceEntry {
		return ExperienceEntry{ID: id}
	}, onChange, EmptyExperienceMessage)
}

func NewEducationEditor(ids IDGenerator, onChange func([]EducationEntry)) *ListEditor[EducationEntry] {
	return NewListEditor(ids, func(id string) EducationEntry {
		return EducationEntry{ID: id}
	}, onChange, EmptyEducationMessage)
}

// NewSkillsEditor creates skills at LevelIntermediate.
func NewSkillsEditor(ids IDGenerator, onChange func([]SkillEntry)) *ListEditor[SkillEntry] {
	return NewListEditor(ids, func(id string) SkillEntry {
		return SkillEntry{ID: id, Level: LevelIntermediate}
	}, onChange, EmptySkillsMessage)
}

// PersonalInfoEditor 编辑个人信息单例。
type PersonalInfoEditor struct {
	onChange func(PersonalInfo)
}

func NewPersonalInfoEditor(onChange func(PersonalInfo)) *PersonalInfoEditor {
	return &PersonalInfoEditor{onChange: onChange}
}

// Update applies upds in order and reports the result.
func (e *PersonalInfoEditor) Update(info PersonalInfo, upds ...PersonalInfoUpdate) PersonalInfo {
	for _, upd := range upds {
		if upd != nil {
			info = upd(info)
		}
	}
	if e.onChange != nil {
		e.onChange(info)
	}
	return info
}
