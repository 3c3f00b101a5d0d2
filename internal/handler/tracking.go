package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridwan89/swiftbus-booking/internal/service"
)

// TrackingHandler handles HTTP requests for live trip status.
type TrackingHandler struct {
	trackingService *service.TrackingService
	playback        *service.Playback
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService, playback *service.Playback) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService, playback: playback}
}

// GetTracking handles GET /v1/bookings/:code/tracking
func (h *TrackingHandler) GetTracking(c *gin.Context) {
	code := c.Param("code")

	view, err := h.trackingService.View(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newTrackingResponse(view, h.playback.Running(code)))
}

// Advance handles POST /v1/bookings/:code/advance
func (h *TrackingHandler) Advance(c *gin.Context) {
	code := c.Param("code")

	view, err := h.trackingService.Advance(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newTrackingResponse(view, h.playback.Running(code)))
}

// StartPlayback handles POST /v1/bookings/:code/playback
func (h *TrackingHandler) StartPlayback(c *gin.Context) {
	code := c.Param("code")

	if err := h.playback.Start(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusAccepted, gin.H{"code": code, "playing": true})
}

// StopPlayback handles DELETE /v1/bookings/:code/playback
func (h *TrackingHandler) StopPlayback(c *gin.Context) {
	code := c.Param("code")

	if err := h.playback.Stop(code); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"code": code, "playing": false})
}
