package forms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/generations"
	"cv-builder/internal/sessions"
	"cv-builder/internal/shared/server/respond"
	"cv-builder/internal/shared/util"
	"cv-builder/resume/form"
	"cv-builder/resume/model"
	"cv-builder/resume/render"
)

const maxBodySize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches form routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/form/schema", h.schema)
	rg.POST("/forms", h.create)
	rg.GET("/forms/:id", h.get)
	rg.PUT("/forms/:id/fields/:field", h.setField)
	rg.POST("/forms/:id/lists/:category", h.appendItem)
	rg.PATCH("/forms/:id/lists/:category/:index", h.updateItem)
	rg.DELETE("/forms/:id/lists/:category/:index", h.removeItem)
	rg.POST("/forms/:id/submit", h.submit)
	rg.POST("/forms/:id/reopen", h.reopen)
	rg.GET("/forms/:id/document", h.document)
	rg.GET("/forms/:id/download", h.download)
	rg.GET("/forms/:id/download/text", h.downloadText)
	rg.GET("/forms/:id/generations", h.listGenerations)
	rg.GET("/forms/:id/generations/:gid", h.getGeneration)
	rg.POST("/render", h.renderRecord)
}

// RenderRoutes lists the route patterns that lay out a PDF.
func RenderRoutes() []string {
	return []string{
		"/api/v1/forms/:id/download",
		"/api/v1/forms/:id/download/text",
		"/api/v1/render",
	}
}

func (h *Handler) schema(c *gin.Context) {
	sections, err := form.Sections()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load form schema", nil)
		return
	}
	required := h.Svc.Options.Required
	if required == nil {
		required = []string{}
	}
	skillsInput := h.Svc.Options.SkillsInput
	if skillsInput == "" {
		skillsInput = form.SkillsStructured
	}
	respond.OK(c, SchemaResponse{
		Sections:    sections,
		SkillsInput: skillsInput,
		Required:    required,
	})
}

func (h *Handler) create(c *gin.Context) {
	sess, err := h.Svc.Create(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("formId", sess.ID)
	c.Set("stateTransition", "->"+string(form.StateEditing))
	respond.JSON(c, http.StatusCreated, toFormResponse(sess))
}

func (h *Handler) get(c *gin.Context) {
	formID := bindFormID(c)
	sess, err := h.Svc.Get(c.Request.Context(), formID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toFormResponse(sess))
}

func (h *Handler) setField(c *gin.Context) {
	formID := bindFormID(c)
	var req setFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Value == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	sess, err := h.Svc.SetField(c.Request.Context(), formID, c.Param("field"), *req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toFormResponse(sess))
}

func (h *Handler) appendItem(c *gin.Context) {
	formID := bindFormID(c)
	cat, ok := bindCategory(c)
	if !ok {
		return
	}
	var req listItemRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	sess, index, err := h.Svc.AppendItem(c.Request.Context(), formID, cat, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, AppendResponse{Index: index, Form: toFormResponse(sess)})
}

func (h *Handler) updateItem(c *gin.Context) {
	formID := bindFormID(c)
	cat, ok := bindCategory(c)
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	var req listItemRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Svc.UpdateItem(c.Request.Context(), formID, cat, index, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toFormResponse(sess))
}

func (h *Handler) removeItem(c *gin.Context) {
	formID := bindFormID(c)
	cat, ok := bindCategory(c)
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	sess, err := h.Svc.RemoveItem(c.Request.Context(), formID, cat, index)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toFormResponse(sess))
}

func (h *Handler) submit(c *gin.Context) {
	formID := bindFormID(c)
	sess, rec, err := h.Svc.Submit(c.Request.Context(), formID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("stateTransition", string(form.StateEditing)+"->"+string(form.StateGenerated))
	respond.OK(c, SubmitResponse{
		FormID:      sess.ID,
		State:       sess.Form.State(),
		Record:      rec,
		DownloadURL: "/api/v1/forms/" + sess.ID + "/download",
	})
}

func (h *Handler) reopen(c *gin.Context) {
	formID := bindFormID(c)
	sess, err := h.Svc.Reopen(c.Request.Context(), formID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("stateTransition", string(form.StateGenerated)+"->"+string(form.StateEditing))
	respond.OK(c, toFormResponse(sess))
}

func (h *Handler) document(c *gin.Context) {
	formID := bindFormID(c)
	doc, err := h.Svc.Document(c.Request.Context(), formID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) download(c *gin.Context) {
	formID := bindFormID(c)
	filename := render.FileName
	if raw := c.Query("name"); raw != "" {
		clean, err := util.SanitizeFileName(raw, ".pdf")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"name": raw})
			return
		}
		filename = clean
	}

	dl, err := h.Svc.Download(c.Request.Context(), formID)
	if dl.Generation.ID != "" {
		c.Set("generationId", dl.Generation.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("ETag", util.ETag(dl.Data))
	respond.Attachment(c, filename, render.ContentType, dl.Data)
}

func (h *Handler) downloadText(c *gin.Context) {
	formID := bindFormID(c)
	text, err := h.Svc.DownloadText(c.Request.Context(), formID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *Handler) listGenerations(c *gin.Context) {
	formID := bindFormID(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	items, err := h.Svc.ListGenerations(c.Request.Context(), formID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, GenerationsResponse{Items: items, Limit: limit, Offset: offset})
}

func (h *Handler) getGeneration(c *gin.Context) {
	formID := bindFormID(c)
	genID := c.Param("gid")
	c.Set("generationId", genID)
	gen, err := h.Svc.GetGeneration(c.Request.Context(), formID, genID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gen)
}

func (h *Handler) renderRecord(c *gin.Context) {
	var rec model.ResumeRecord
	if !bindJSON(c, &rec) {
		return
	}
	data, err := h.Svc.RenderRecord(c.Request.Context(), rec)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, render.FileName, render.ContentType, data)
}

func bindFormID(c *gin.Context) string {
	formID := c.Param("id")
	c.Set("formId", formID)
	return formID
}

func bindJSON(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	return true
}

func bindCategory(c *gin.Context) (form.Category, bool) {
	cat, err := form.ParseCategory(c.Param("category"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return "", false
	}
	return cat, true
}

func bindIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "index must be an integer", nil)
		return 0, false
	}
	return index, true
}

func writeError(c *gin.Context, err error) {
	var required *form.RequiredError
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "form not found", nil)
	case errors.Is(err, sessions.ErrFull):
		respond.Error(c, http.StatusServiceUnavailable, "capacity_exceeded", "too many open forms, try again later", nil)
	case errors.Is(err, generations.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
	case errors.As(err, &required):
		respond.Error(c, http.StatusUnprocessableEntity, "missing_required", err.Error(), gin.H{"fields": required.Fields})
	case errors.Is(err, form.ErrNotEditing):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrNotSubmitted):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrUnknownCategory),
		errors.Is(err, form.ErrWrongKind),
		errors.Is(err, form.ErrIndexOutOfRange),
		errors.Is(err, form.ErrLastEntry),
		errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrRenderFailed):
		respond.Error(c, http.StatusBadGateway, "render_failed", "failed to render document", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
