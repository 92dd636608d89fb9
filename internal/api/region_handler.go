package api

import (
	"errors"
	"log/slog"
	"net/http"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegionHandler serves the singleton site configuration.
type RegionHandler struct {
	regionService service.RegionService
}

// NewRegionHandler creates a new RegionHandler.
func NewRegionHandler(regionService service.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// RegionRequest is the PUT body. Absent fields keep their stored value.
type RegionRequest struct {
	RegionName      *string  `json:"region_name"`
	MetaDescription *string  `json:"meta_description"`
	HeroTitle       *string  `json:"hero_title"`
	HeroSubtitle    *string  `json:"hero_subtitle"`
	RegionCity      *string  `json:"region_city"`
	RegionState     *string  `json:"region_state"`
	Facebook        *string  `json:"facebook"`
	Instagram       *string  `json:"instagram"`
	LinkedIn        *string  `json:"linkedin"`
	XTwitter        *string  `json:"x_twitter"`
	MapLat          *float64 `json:"map_lat"`
	MapLon          *float64 `json:"map_lon"`
	MapZoom         *int     `json:"map_zoom"`
	MapEmbedLink    *string  `json:"map_embed_link"`
	LogoURL         *string  `json:"logo_url"`
	HeroImageURL    *string  `json:"hero_image_url"`
	ContactFormURL  *string  `json:"contact_form_url"`
	FNGFormURL      *string  `json:"fng_form_url"`
}

func (r RegionRequest) toUpdate() domain.RegionUpdate {
	return domain.RegionUpdate{
		RegionName:      r.RegionName,
		MetaDescription: r.MetaDescription,
		HeroTitle:       r.HeroTitle,
		HeroSubtitle:    r.HeroSubtitle,
		RegionCity:      r.RegionCity,
		RegionState:     r.RegionState,
		Facebook:        r.Facebook,
		Instagram:       r.Instagram,
		LinkedIn:        r.LinkedIn,
		XTwitter:        r.XTwitter,
		MapLat:          r.MapLat,
		MapLon:          r.MapLon,
		MapZoom:         r.MapZoom,
		MapEmbedLink:    r.MapEmbedLink,
		LogoURL:         r.LogoURL,
		HeroImageURL:    r.HeroImageURL,
		ContactFormURL:  r.ContactFormURL,
		FNGFormURL:      r.FNGFormURL,
	}
}

// GetRegion returns the stored Region. When the store cannot be reached the
// page still renders: the default placeholder is served instead.
func (h *RegionHandler) GetRegion(c *gin.Context) {
	region, err := h.regionService.GetRegion(c.Request.Context())
	if err != nil {
		if !errors.Is(err, service.ErrConfigUnavailable) {
			respondError(c, err, "Failed to load region")
			return
		}
		slog.Warn("serving default region", "error", err)
		fallback := domain.DefaultRegion()
		region = &fallback
	}
	c.JSON(http.StatusOK, region)
}

// UpsertRegion merges the body into the stored Region, creating it on the
// first write.
func (h *RegionHandler) UpsertRegion(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, created, err := h.regionService.UpsertRegion(c.Request.Context(), req.toUpdate())
	if err != nil {
		respondError(c, err, "Failed to save region")
		return
	}
	if created {
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Region updated"})
}
