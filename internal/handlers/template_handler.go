package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studyprep/content-service/internal/models"
	"github.com/studyprep/content-service/internal/repositories"
	"github.com/studyprep/content-service/internal/services"
)

// maxImportFileSize bounds uploaded template files at 10 MB.
const maxImportFileSize = 10 << 20

// TemplateHandler serves the question template editing surface: loading,
// validating, saving, importing and exporting quiz and past-paper templates.
type TemplateHandler struct {
	BaseHandler
	templates services.TemplateService
	importer  services.ImportExportService
}

func NewTemplateHandler(
	templates services.TemplateService,
	importer services.ImportExportService,
	logger *slog.Logger,
) *TemplateHandler {
	return &TemplateHandler{
		BaseHandler: NewBaseHandler(logger),
		templates:   templates,
		importer:    importer,
	}
}

// GetQuestions loads a template from the remote API and returns it in the
// canonical nested shape, whatever shape the stored payload is in.
// GET /api/v1/templates/:kind/:id/questions
func (h *TemplateHandler) GetQuestions(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")

	template, err := h.templates.LoadTemplate(c.Request.Context(), kind, id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// SaveQuestions reassembles the editor's flat question list into sections and
// persists the result through the remote API.
// POST /api/v1/templates/:kind/:id/questions
func (h *TemplateHandler) SaveQuestions(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")

	var req services.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.templates.SaveTemplate(c.Request.Context(), kind, id, h.extractUserIDString(c), req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Template saved successfully", result)
}

// ValidateTemplate runs the structural checks against a raw document without
// saving anything. The editor calls this before offering the save button.
// POST /api/v1/templates/validate
func (h *TemplateHandler) ValidateTemplate(c *gin.Context) {
	var doc any
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if err := h.templates.ValidateDocument(doc); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "document": doc})
}

// ImportTemplate accepts a JSON or YAML template file upload, normalizes it
// and returns the canonical template for preview along with the job record.
// POST /api/v1/templates/import
func (h *TemplateHandler) ImportTemplate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "No file provided", err)
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("File exceeds the %d MB limit", maxImportFileSize>>20), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	result, err := h.importer.ImportTemplateFromFile(c.Request.Context(), data, fileHeader.Filename, h.extractUserIDString(c))
	if err != nil {
		if result != nil {
			// Validation rejections still return the job so the client can
			// show what failed.
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Template imported successfully", result)
}

// ExportTemplate streams the template in the requested format.
// GET /api/v1/templates/:kind/:id/export?format=json|csv|xlsx
func (h *TemplateHandler) ExportTemplate(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")
	format := c.DefaultQuery("format", "json")

	switch format {
	case "json":
		data, err := h.templates.ExportTemplate(c.Request.Context(), kind, id)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.json", kind, id))
		c.Data(http.StatusOK, "application/json", data)

	case "csv":
		template, err := h.templates.LoadTemplate(c.Request.Context(), kind, id)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		data, err := h.importer.ExportQuestionsToCSV(template)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.csv", kind, id))
		c.Data(http.StatusOK, "text/csv", data)

	case "xlsx":
		template, err := h.templates.LoadTemplate(c.Request.Context(), kind, id)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		data, err := h.importer.ExportQuestionsToExcel(template)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.xlsx", kind, id))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		h.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Unsupported export format: %s", format), nil)
	}
}

// GetImportJob returns one import job record.
// GET /api/v1/import-jobs/:id
func (h *TemplateHandler) GetImportJob(c *gin.Context) {
	job, err := h.importer.GetImportJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListImportJobs lists the caller's import jobs, newest first.
// GET /api/v1/import-jobs?status=&limit=&offset=
func (h *TemplateHandler) ListImportJobs(c *gin.Context) {
	filters := repositories.ImportJobFilters{
		UserID: h.extractUserIDString(c),
		Status: models.ImportJobStatus(c.Query("status")),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	jobs, total, err := h.importer.ListImportJobs(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
