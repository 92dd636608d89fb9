package api

import (
	"net/http"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationHandler holds the location service dependency.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// --- DTOs ---

// LocationRequest is the body for POST and PUT. An _id on POST turns the
// create into an update of that record.
type LocationRequest struct {
	ID           string  `json:"_id"`
	Name         *string `json:"name"`
	MapLink      *string `json:"mapLink"`
	Address      *string `json:"address"`
	Description  *string `json:"description"`
	Q            *string `json:"q"`
	EmbedMapLink *string `json:"embedMapLink"`
	ImageURL     *string `json:"imageUrl"`
	PaxImageURL  *string `json:"paxImageUrl"`
}

func (r LocationRequest) toUpdate() domain.LocationUpdate {
	return domain.LocationUpdate{
		Name:         r.Name,
		MapLink:      r.MapLink,
		Address:      r.Address,
		Description:  r.Description,
		Q:            r.Q,
		EmbedMapLink: r.EmbedMapLink,
		ImageURL:     r.ImageURL,
		PaxImageURL:  r.PaxImageURL,
	}
}

func (r LocationRequest) toLocation() domain.Location {
	var l domain.Location
	r.toUpdate().Apply(&l)
	return l
}

// --- Handler Methods ---

// ListLocations returns every location, ordered by name.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch locations")
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	location, err := h.locationService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch location")
		return
	}
	c.JSON(http.StatusOK, location)
}

// CreateLocation handles POST. Without _id it creates (201); with one it
// updates in place (200).
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.ID != "" {
		h.update(c, req)
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), req.toLocation())
	if err != nil {
		respondError(c, err, "Failed to create location")
		return
	}
	c.JSON(http.StatusCreated, location)
}

// UpdateLocation handles PUT. The body must name the record with _id.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.update(c, req)
}

func (h *LocationHandler) update(c *gin.Context, req LocationRequest) {
	location, err := h.locationService.UpdateLocation(c.Request.Context(), req.ID, req.toUpdate())
	if err != nil {
		respondError(c, err, "Failed to update location")
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation removes ?id= and every workout held there.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		abortWithError(c, http.StatusBadRequest, "id is required")
		return
	}

	removed, err := h.locationService.DeleteLocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to delete location")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Location and its workouts deleted",
		"workoutsRemoved": removed,
	})
}
