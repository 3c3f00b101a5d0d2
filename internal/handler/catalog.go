package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/service"
)

// TripSearcher lists and looks up catalog trips.
type TripSearcher interface {
	Search(origin, destination string) []domain.Trip
	Get(id string) (domain.Trip, error)
}

// CatalogHandler handles HTTP requests for the bus catalog.
type CatalogHandler struct {
	catalog         TripSearcher
	manifestService *service.ManifestService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog TripSearcher, manifestService *service.ManifestService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, manifestService: manifestService}
}

// ListTrips handles GET /v1/trips?from=&to=
func (h *CatalogHandler) ListTrips(c *gin.Context) {
	trips := h.catalog.Search(c.Query("from"), c.Query("to"))
	if trips == nil {
		trips = []domain.Trip{}
	}
	respondJSON(c, http.StatusOK, gin.H{"trips": trips})
}

// GetTrip handles GET /v1/trips/:id
func (h *CatalogHandler) GetTrip(c *gin.Context) {
	trip, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// GetManifest handles GET /v1/trips/:id/manifest?q=&status=
func (h *CatalogHandler) GetManifest(c *gin.Context) {
	res, err := h.manifestService.Manifest(c.Request.Context(), service.ManifestRequest{
		TripID: c.Param("id"),
		Search: c.Query("q"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, res)
}
