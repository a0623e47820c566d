package forms

import (
	"time"

	"cv-builder/internal/generations"
	"cv-builder/internal/sessions"
	"cv-builder/resume/form"
	"cv-builder/resume/model"
)

// FormResponse is the outward-facing representation of an editing session.
type FormResponse struct {
	FormID      string             `json:"formId"`
	State       form.State         `json:"state"`
	SkillsInput form.SkillsInput   `json:"skillsInput"`
	Required    []string           `json:"required"`
	Record      model.ResumeRecord `json:"record"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// SubmitResponse carries the frozen snapshot and where to fetch its PDF.
type SubmitResponse struct {
	FormID      string             `json:"formId"`
	State       form.State         `json:"state"`
	Record      model.ResumeRecord `json:"record"`
	DownloadURL string             `json:"downloadUrl"`
}

// AppendResponse reports the index of a newly appended row.
type AppendResponse struct {
	Index int          `json:"index"`
	Form  FormResponse `json:"form"`
}

// SchemaResponse enumerates the presentation fields of the form.
type SchemaResponse struct {
	Sections    []form.Section   `json:"sections"`
	SkillsInput form.SkillsInput `json:"skillsInput"`
	Required    []string         `json:"required"`
}

// GenerationsResponse lists render attempts for a session.
type GenerationsResponse struct {
	Items  []generations.Generation `json:"items"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

type setFieldRequest struct {
	Value *string `json:"value"`
}

// listItemRequest is shared by append and update. Value targets scalar lists,
// Fields and Highlights target entry lists.
type listItemRequest struct {
	Value      *string           `json:"value"`
	Fields     map[string]string `json:"fields"`
	Highlights []string          `json:"highlights"`
}

func (r listItemRequest) isEmpty() bool {
	return r.Value == nil && len(r.Fields) == 0 && r.Highlights == nil
}

func toFormResponse(sess *sessions.Session) FormResponse {
	opts := sess.Form.Options()
	required := opts.Required
	if required == nil {
		required = []string{}
	}
	return FormResponse{
		FormID:      sess.ID,
		State:       sess.Form.State(),
		SkillsInput: opts.SkillsInput,
		Required:    required,
		Record:      sess.Form.Record(),
		CreatedAt:   sess.CreatedAt,
	}
}
