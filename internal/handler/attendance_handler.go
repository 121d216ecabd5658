package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Attendance, error)
	Create(ctx context.Context, req models.CreateAttendanceRequest) (*models.Attendance, error)
	Update(ctx context.Context, id string, req models.UpdateAttendanceRequest) (*models.Attendance, error)
	Delete(ctx context.Context, id string) error
}

// AttendanceHandler exposes daily attendance endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary List attendance records
// @Description Either date or childId is required.
// @Tags Attendance
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param childId query string false "Filter by child"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AttendanceFilter{ListParams: listParams(c)}
	filter.ChildID = strings.TrimSpace(c.Query("childId"))
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, []appErrors.FieldError{
				{Field: "date", Message: "must be a date in YYYY-MM-DD format"},
			}))
			return
		}
		filter.Date = &date
	}

	records, pagination, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Get godoc
// @Summary Get attendance record
// @Tags Attendance
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	record, err := h.attendance.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Record attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req models.CreateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateAttendanceRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req models.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete attendance record
// @Tags Attendance
// @Param id path string true "ID"
// @Success 204
// @Security BearerAuth
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
