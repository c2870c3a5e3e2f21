package optimize

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kmanav329/ai-resume-screener/internal/extract"
	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/rewrite"
	"github.com/kmanav329/ai-resume-screener/internal/shared/server/respond"
	"github.com/kmanav329/ai-resume-screener/internal/shared/telemetry"
)

// maxUploadBytes caps resume uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler exposes the optimization endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Create runs the full pipeline on an uploaded resume.
// POST /optimizations (multipart: resume file + job_description or job_url)
func (h *Handler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resume file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "resume file exceeds the 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read resume file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read resume file", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "resume file exceeds the 10MB limit", nil)
		return
	}

	run, err := h.Service.Run(c.Request.Context(), RunInput{
		ResumeData:     data,
		ResumeFilename: fileHeader.Filename,
		ResumeMIME:     fileHeader.Header.Get("Content-Type"),
		JobText:        c.PostForm("job_description"),
		JobURL:         c.PostForm("job_url"),
	})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	respond.JSON(c, http.StatusCreated, toRunResponse(run))
}

// Get returns a stored run.
// GET /optimizations/:id
func (h *Handler) Get(c *gin.Context) {
	run, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, ErrorCodeValidation, "optimization not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "could not load optimization", nil)
		return
	}
	respond.OK(c, toRunResponse(run))
}

// List returns recent runs.
// GET /optimizations?limit=20
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.Service.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "could not list optimizations", nil)
		return
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, toRunSummary(run))
	}
	respond.OK(c, gin.H{"optimizations": summaries})
}

// Download streams a rendered artifact.
// GET /optimizations/:id/download?format=docx|pdf|text|cover
func (h *Handler) Download(c *gin.Context) {
	format := c.DefaultQuery("format", FormatDocx)

	body, fileName, contentType, err := h.Service.OpenArtifact(c.Request.Context(), c.Param("id"), format)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeValidation, "optimization not found", nil)
		return
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unknown download format", gin.H{"format": format})
		return
	case errors.Is(err, ErrArtifactUnavailable):
		respond.Error(c, http.StatusConflict, ErrorCodeStorage, "artifact was not produced for this run", gin.H{"format": format})
		return
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "could not open artifact", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		telemetry.Error("artifact stream failed", map[string]any{"id": c.Param("id"), "format": format, "error": err.Error()})
	}
}

func (h *Handler) writeRunError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedUpload, "resume must be a PDF, DOCX or plain-text file", nil)
	case errors.Is(err, extract.ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeValidation, "no extractable text in the uploaded resume", nil)
	case errors.Is(err, gap.ErrMalformedReport), errors.Is(err, rewrite.ErrMalformedResume):
		respond.Error(c, http.StatusBadGateway, ErrorCodeLLMSchemaMismatch, "the language model returned an unusable response", nil)
	case errors.Is(err, gap.ErrUpstream), errors.Is(err, rewrite.ErrUpstream):
		respond.Error(c, http.StatusBadGateway, ErrorCodeLLMUpstream, "the language model request failed", nil)
	default:
		telemetry.Error("optimization failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "optimization failed", nil)
	}
}
