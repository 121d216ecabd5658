package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/service"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/export"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type reportService interface {
	Generate(ctx context.Context, reportType service.ReportType, format export.Format) (*export.Document, error)
}

// ReportHandler exposes document exports.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate godoc
// @Summary Export a report
// @Tags Reports
// @Produce application/pdf,text/csv
// @Param type path string true "children, parents, programs, enrollments or payments"
// @Param format query string false "pdf (default) or csv"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/{type} [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, []appErrors.FieldError{
			{Field: "format", Message: "must be one of pdf csv"},
		}))
		return
	}
	doc, err := h.reports.Generate(c.Request.Context(), service.ReportType(c.Param("type")), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Data)
}
