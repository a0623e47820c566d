package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"cv-builder/resume/model"
)

// State is the lifecycle state of a form.
type State string

const (
	StateEditing   State = "editing"
	StateGenerated State = "generated"
)

// SkillsInput selects how the skills section is entered.
type SkillsInput string

const (
	// SkillsStructured edits skills as a list, one entry per row.
	SkillsStructured SkillsInput = "structured"
	// SkillsFreeText accepts skills as one comma-separated scalar field.
	SkillsFreeText SkillsInput = "freetext"
)

// ErrUnknownSkillsInput indicates a skills entry mode name ParseSkillsInput
// does not recognize.
var ErrUnknownSkillsInput = errors.New("unknown skills input mode")

// ParseSkillsInput resolves a skills entry mode name. Empty means structured.
func ParseSkillsInput(raw string) (SkillsInput, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "structured", "list":
		return SkillsStructured, nil
	case "freetext", "free-text", "text":
		return SkillsFreeText, nil
	}
	return SkillsStructured, fmt.Errorf("%w: %q", ErrUnknownSkillsInput, raw)
}

// Options configures a Form.
type Options struct {
	SkillsInput SkillsInput
	// Required lists scalar field names that must be non-blank at submit.
	Required []string
}

// Form owns one ResumeRecord for the lifetime of an editing session and is
// the only sanctioned way to mutate it. It is safe for concurrent use.
type Form struct {
	mu       sync.Mutex
	opts     Options
	state    State
	record   model.ResumeRecord
	snapshot *model.ResumeRecord
}

// New constructs a form in the editing state with blank defaults.
func New(opts Options) *Form {
	if opts.SkillsInput == "" {
		opts.SkillsInput = SkillsStructured
	}
	return &Form{
		opts:   opts,
		state:  StateEditing,
		record: model.NewRecord(),
	}
}

// NewFromRecord constructs an editing form seeded with rec.
func NewFromRecord(opts Options, rec model.ResumeRecord) *Form {
	f := New(opts)
	f.record = rec.Normalize()
	return f
}

// Options returns the options the form was built with.
func (f *Form) Options() Options {
	return f.opts
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Record returns a copy of the live record.
func (f *Form) Record() model.ResumeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record.Clone()
}

// Snapshot returns the record frozen by the last Submit.
func (f *Form) Snapshot() (model.ResumeRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapshot == nil {
		return model.ResumeRecord{}, false
	}
	return f.snapshot.Clone(), true
}

// SetScalar replaces one scalar field.
func (f *Form) SetScalar(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	rec := &f.record
	switch field {
	case "fullName":
		rec.FullName = value
	case "email":
		rec.Email = value
	case "phone":
		rec.Phone = value
	case "address":
		rec.Address = value
	case "linkedin":
		rec.LinkedIn = value
	case "github":
		rec.GitHub = value
	case "skills":
		if f.opts.SkillsInput != SkillsFreeText {
			return fmt.Errorf("%w: skills is a list field", ErrUnknownField)
		}
		skills := model.SplitSkills(value)
		if len(skills) == 0 {
			skills = []string{""}
		}
		rec.Skills = model.SkillList(skills)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// UpdateListItem merges patch into the object entry at index.
func (f *Form) UpdateListItem(cat Category, index int, patch Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if err := f.checkIndex(cat, index, false); err != nil {
		return err
	}
	rec := &f.record
	switch cat {
	case CategoryEducation:
		entry := rec.Education[index]
		if err := applyEducation(&entry, patch); err != nil {
			return err
		}
		rec.Education[index] = entry
	case CategoryExperience:
		entry := rec.Experience[index]
		if err := applyExperience(&entry, patch); err != nil {
			return err
		}
		rec.Experience[index] = entry
	case CategoryProjects:
		entry := rec.Projects[index]
		if err := applyProject(&entry, patch); err != nil {
			return err
		}
		rec.Projects[index] = entry
	}
	return nil
}

// SetHighlights replaces the highlight bullets of the experience entry at index.
func (f *Form) SetHighlights(index int, highlights []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if err := f.checkIndex(CategoryExperience, index, false); err != nil {
		return err
	}
	f.record.Experience[index].Highlights = append([]string(nil), highlights...)
	return nil
}

// SetListScalar replaces the string at index of a scalar list.
func (f *Form) SetListScalar(cat Category, index int, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if err := f.checkIndex(cat, index, true); err != nil {
		return err
	}
	switch cat {
	case CategorySkills:
		f.record.Skills[index] = value
	case CategoryInterests:
		f.record.Interests[index] = value
	}
	return nil
}

// AppendListItem appends a blank entry and returns its index.
func (f *Form) AppendListItem(cat Category) (int, error) {
	if cat.IsScalar() {
		return f.AppendScalar(cat, "")
	}
	return f.AppendEntry(cat, nil)
}

// AppendEntry appends an object entry built from patch and returns its index.
func (f *Form) AppendEntry(cat Category, patch Patch) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return 0, err
	}
	if err := checkKind(cat, false); err != nil {
		return 0, err
	}
	rec := &f.record
	switch cat {
	case CategoryEducation:
		var entry model.EducationEntry
		if err := applyEducation(&entry, patch); err != nil {
			return 0, err
		}
		rec.Education = append(rec.Education, entry)
	case CategoryExperience:
		var entry model.ExperienceEntry
		if err := applyExperience(&entry, patch); err != nil {
			return 0, err
		}
		rec.Experience = append(rec.Experience, entry)
	case CategoryProjects:
		var entry model.ProjectEntry
		if err := applyProject(&entry, patch); err != nil {
			return 0, err
		}
		rec.Projects = append(rec.Projects, entry)
	}
	return cat.length(rec) - 1, nil
}

// AppendScalar appends value to a scalar list and returns its index.
func (f *Form) AppendScalar(cat Category, value string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return 0, err
	}
	if err := checkKind(cat, true); err != nil {
		return 0, err
	}
	switch cat {
	case CategorySkills:
		f.record.Skills = append(f.record.Skills, value)
	case CategoryInterests:
		f.record.Interests = append(f.record.Interests, value)
	}
	return cat.length(&f.record) - 1, nil
}

// RemoveListItem deletes the entry at index, keeping the order of the rest.
func (f *Form) RemoveListItem(cat Category, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if err := f.checkIndex(cat, index, cat.IsScalar()); err != nil {
		return err
	}
	if cat.KeepsOne() && cat.length(&f.record) == 1 {
		return ErrLastEntry
	}
	rec := &f.record
	switch cat {
	case CategoryEducation:
		rec.Education = append(rec.Education[:index], rec.Education[index+1:]...)
	case CategoryExperience:
		rec.Experience = append(rec.Experience[:index], rec.Experience[index+1:]...)
	case CategoryProjects:
		rec.Projects = append(rec.Projects[:index], rec.Projects[index+1:]...)
	case CategorySkills:
		rec.Skills = append(rec.Skills[:index], rec.Skills[index+1:]...)
	case CategoryInterests:
		rec.Interests = append(rec.Interests[:index], rec.Interests[index+1:]...)
	}
	return nil
}

// Submit freezes a snapshot of the live record and moves the form to the
// generated state. Every call takes a fresh snapshot.
func (f *Form) Submit() (model.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if missing := f.missingRequired(); len(missing) > 0 {
		return model.ResumeRecord{}, &RequiredError{Fields: missing}
	}
	snap := f.record.Clone()
	f.snapshot = &snap
	f.state = StateGenerated
	return snap.Clone(), nil
}

// Reopen moves a generated form back to editing. The last snapshot is kept
// until the next Submit replaces it.
func (f *Form) Reopen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateGenerated {
		return fmt.Errorf("%w: form is already editing", ErrNotEditing)
	}
	f.state = StateEditing
	return nil
}

func (f *Form) editable() error {
	if f.state != StateEditing {
		return ErrNotEditing
	}
	return nil
}

func (f *Form) checkIndex(cat Category, index int, scalar bool) error {
	if err := checkKind(cat, scalar); err != nil {
		return err
	}
	if n := cat.length(&f.record); index < 0 || index >= n {
		return fmt.Errorf("%w: %s[%d] (length %d)", ErrIndexOutOfRange, cat, index, n)
	}
	return nil
}

func (f *Form) missingRequired() []string {
	var missing []string
	for _, field := range f.opts.Required {
		value, ok := scalarValue(&f.record, field)
		if !ok || strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func checkKind(cat Category, scalar bool) error {
	if !cat.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	if cat.IsScalar() != scalar {
		return fmt.Errorf("%w: %s", ErrWrongKind, cat)
	}
	return nil
}

func scalarValue(rec *model.ResumeRecord, field string) (string, bool) {
	switch field {
	case "fullName":
		return rec.FullName, true
	case "email":
		return rec.Email, true
	case "phone":
		return rec.Phone, true
	case "address":
		return rec.Address, true
	case "linkedin":
		return rec.LinkedIn, true
	case "github":
		return rec.GitHub, true
	case "skills":
		return strings.Join(rec.Skills, ""), true
	}
	return "", false
}
