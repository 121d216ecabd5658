package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type checkinService interface {
	QRCode(ctx context.Context, childID string) ([]byte, error)
	Checkin(ctx context.Context, req models.CheckinRequest) (*models.Attendance, error)
}

// CheckinHandler serves per-child QR codes and records scans.
type CheckinHandler struct {
	checkin checkinService
}

// NewCheckinHandler constructs CheckinHandler.
func NewCheckinHandler(checkin checkinService) *CheckinHandler {
	return &CheckinHandler{checkin: checkin}
}

// QRCode godoc
// @Summary Today's check-in QR code for a child
// @Tags Attendance
// @Produce png
// @Param id path string true "Child ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /children/{id}/checkin-qr [get]
func (h *CheckinHandler) QRCode(c *gin.Context) {
	png, err := h.checkin.QRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Checkin godoc
// @Summary Record a QR check-in
// @Description Marks the child present for today. Repeated scans are idempotent.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.CheckinRequest true "Scanned token"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/checkin [post]
func (h *CheckinHandler) Checkin(c *gin.Context) {
	var req models.CheckinRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.checkin.Checkin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
