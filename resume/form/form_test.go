package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cv-builder/resume/model"
)

func TestSetScalarUpdatesField(t *testing.T) {
	f := New(Options{})
	if err := f.SetScalar("fullName", "Ada Lovelace"); err != nil {
		t.Fatalf("SetScalar: %v", err)
	}
	if err := f.SetScalar("github", "github.com/ada"); err != nil {
		t.Fatalf("SetScalar: %v", err)
	}
	rec := f.Record()
	if rec.FullName != "Ada Lovelace" || rec.GitHub != "github.com/ada" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestSetScalarRejectsUnknownField(t *testing.T) {
	f := New(Options{})
	if err := f.SetScalar("nationality", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.SetScalar("skills", "Go, Rust"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected skills to be a list field in structured mode, got %v", err)
	}
}

func TestFreeTextSkillsAreSplitAtTheBoundary(t *testing.T) {
	f := New(Options{SkillsInput: SkillsFreeText})
	if err := f.SetScalar("skills", "Go, Rust , C++,"); err != nil {
		t.Fatalf("SetScalar: %v", err)
	}
	if diff := cmp.Diff(model.SkillList{"Go", "Rust", "C++"}, f.Record().Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}

	if err := f.SetScalar("skills", " , "); err != nil {
		t.Fatalf("SetScalar: %v", err)
	}
	if got := f.Record().Skills; len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one blank skill row, got %v", got)
	}
}

func TestUpdateListItemMergesPatch(t *testing.T) {
	f := New(Options{})
	if err := f.UpdateListItem(CategoryEducation, 0, Patch{"degree": "BS", "institution": "Inst"}); err != nil {
		t.Fatalf("UpdateListItem: %v", err)
	}
	if err := f.UpdateListItem(CategoryEducation, 0, Patch{"graduationYear": "2024"}); err != nil {
		t.Fatalf("UpdateListItem: %v", err)
	}
	want := model.EducationEntry{Degree: "BS", Institution: "Inst", GraduationYear: "2024"}
	if diff := cmp.Diff(want, f.Record().Education[0]); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateListItemIsAtomicOnUnknownField(t *testing.T) {
	f := New(Options{})
	err := f.UpdateListItem(CategoryExperience, 0, Patch{"company": "Acme", "salary": "lots"})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got := f.Record().Experience[0].Company; got != "" {
		t.Fatalf("expected no partial write, got company %q", got)
	}
}

func TestListOperationsAreBoundsChecked(t *testing.T) {
	f := New(Options{})
	cases := []struct {
		name string
		err  error
	}{
		{"update past end", f.UpdateListItem(CategoryEducation, 1, Patch{"degree": "BS"})},
		{"update negative", f.UpdateListItem(CategoryExperience, -1, Patch{"company": "Acme"})},
		{"set scalar past end", f.SetListScalar(CategorySkills, 1, "Go")},
		{"remove past end", f.RemoveListItem(CategoryInterests, 3)},
		{"highlights past end", f.SetHighlights(2, []string{"x"})},
		{"project on empty list", f.UpdateListItem(CategoryProjects, 0, Patch{"name": "p"})},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, ErrIndexOutOfRange) {
			t.Fatalf("%s: expected ErrIndexOutOfRange, got %v", tc.name, tc.err)
		}
	}
}

func TestListOperationsCheckKind(t *testing.T) {
	f := New(Options{})
	if err := f.SetListScalar(CategoryEducation, 0, "BS"); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
	if err := f.UpdateListItem(CategorySkills, 0, Patch{"value": "Go"}); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
	if _, err := f.AppendEntry(Category("hobbies"), nil); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestAppendListItemGrowsByOneAndKeepsPriorEntries(t *testing.T) {
	f := New(Options{})
	if err := f.UpdateListItem(CategoryEducation, 0, Patch{"degree": "BS"}); err != nil {
		t.Fatalf("UpdateListItem: %v", err)
	}
	before := f.Record().Education

	idx, err := f.AppendListItem(CategoryEducation)
	if err != nil {
		t.Fatalf("AppendListItem: %v", err)
	}
	after := f.Record().Education
	if len(after) != len(before)+1 {
		t.Fatalf("expected length %d, got %d", len(before)+1, len(after))
	}
	if idx != len(after)-1 {
		t.Fatalf("expected index %d, got %d", len(after)-1, idx)
	}
	if diff := cmp.Diff(before, after[:len(before)]); diff != "" {
		t.Fatalf("prior entries changed (-want +got):\n%s", diff)
	}
	if !after[idx].IsBlank() {
		t.Fatalf("expected blank appended entry, got %+v", after[idx])
	}
}

func TestAppendScalarAndEntry(t *testing.T) {
	f := New(Options{})
	if err := f.SetListScalar(CategorySkills, 0, "Go"); err != nil {
		t.Fatalf("SetListScalar: %v", err)
	}
	if _, err := f.AppendScalar(CategorySkills, "Rust"); err != nil {
		t.Fatalf("AppendScalar: %v", err)
	}
	if _, err := f.AppendEntry(CategoryProjects, Patch{"name": "cv-builder", "description": "PDF CVs"}); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	rec := f.Record()
	if diff := cmp.Diff(model.SkillList{"Go", "Rust"}, rec.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Projects) != 1 || rec.Projects[0].Name != "cv-builder" {
		t.Fatalf("unexpected projects: %+v", rec.Projects)
	}
}

func TestRemoveListItemKeepsOrderAndLastEntry(t *testing.T) {
	f := New(Options{})
	_ = f.SetListScalar(CategoryInterests, 0, "Chess")
	_, _ = f.AppendScalar(CategoryInterests, "Go")
	_, _ = f.AppendScalar(CategoryInterests, "Hiking")

	if err := f.RemoveListItem(CategoryInterests, 1); err != nil {
		t.Fatalf("RemoveListItem: %v", err)
	}
	if diff := cmp.Diff([]string{"Chess", "Hiking"}, f.Record().Interests); diff != "" {
		t.Fatalf("interests mismatch (-want +got):\n%s", diff)
	}

	if err := f.RemoveListItem(CategoryEducation, 0); !errors.Is(err, ErrLastEntry) {
		t.Fatalf("expected ErrLastEntry, got %v", err)
	}

	_, _ = f.AppendEntry(CategoryProjects, Patch{"name": "p"})
	if err := f.RemoveListItem(CategoryProjects, 0); err != nil {
		t.Fatalf("projects may become empty: %v", err)
	}
}

func TestSubmitFreezesSnapshot(t *testing.T) {
	f := New(Options{})
	_ = f.SetScalar("fullName", "Ada")
	_ = f.SetListScalar(CategorySkills, 0, "Go")

	snap, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if f.State() != StateGenerated {
		t.Fatalf("expected generated state, got %s", f.State())
	}
	if err := f.SetScalar("fullName", "Grace"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}

	if err := f.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	_ = f.SetScalar("fullName", "Grace")
	_ = f.SetListScalar(CategorySkills, 0, "Rust")

	stored, ok := f.Snapshot()
	if !ok {
		t.Fatal("expected stored snapshot")
	}
	if stored.FullName != "Ada" || stored.Skills[0] != "Go" || snap.FullName != "Ada" {
		t.Fatalf("snapshot changed after live edits: %+v", stored)
	}

	again, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if again.FullName != "Grace" || again.Skills[0] != "Rust" {
		t.Fatalf("expected re-snapshot of live record, got %+v", again)
	}
}

func TestReopenRequiresGeneratedState(t *testing.T) {
	f := New(Options{})
	if err := f.Reopen(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
}

func TestSubmitEnforcesRequiredFields(t *testing.T) {
	f := New(Options{Required: []string{"fullName", "email"}})
	_ = f.SetScalar("fullName", "Ada")

	_, err := f.Submit()
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	var reqErr *RequiredError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequiredError, got %T", err)
	}
	if diff := cmp.Diff([]string{"email"}, reqErr.Fields); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
	if f.State() != StateEditing {
		t.Fatalf("failed submit must not change state, got %s", f.State())
	}
	if _, ok := f.Snapshot(); ok {
		t.Fatal("failed submit must not snapshot")
	}
}

func TestNewFromRecordNormalizesLists(t *testing.T) {
	f := NewFromRecord(Options{}, model.ResumeRecord{FullName: "Ada"})
	rec := f.Record()
	if rec.FullName != "Ada" || len(rec.Education) != 1 || len(rec.Skills) != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestParseSkillsInput(t *testing.T) {
	for raw, want := range map[string]SkillsInput{
		"":           SkillsStructured,
		"structured": SkillsStructured,
		"free-text":  SkillsFreeText,
		"FREETEXT":   SkillsFreeText,
	} {
		got, err := ParseSkillsInput(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSkillsInput(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseSkillsInput("csv"); !errors.Is(err, ErrUnknownSkillsInput) {
		t.Fatalf("expected ErrUnknownSkillsInput, got %v", err)
	}
}
