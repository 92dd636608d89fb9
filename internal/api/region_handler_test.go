package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downRegionService struct{}

func (downRegionService) GetRegion(context.Context) (*domain.Region, error) {
	return nil, fmt.Errorf("%w: connection refused", service.ErrConfigUnavailable)
}

func (downRegionService) UpsertRegion(context.Context, domain.RegionUpdate) (string, bool, error) {
	return "", false, fmt.Errorf("%w: update region: connection refused", service.ErrStoreUnavailable)
}

func TestGetRegionPlaceholder(t *testing.T) {
	w := newTestServer(t).do(t, http.MethodGet, "/api/region", nil)
	require.Equal(t, http.StatusOK, w.Code)

	region := decode[domain.Region](t, w)
	assert.True(t, region.Placeholder)
	assert.Equal(t, "Your Region", region.RegionName)
}

func TestPutRegion(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPut, "/api/region?pw=wrong", map[string]any{"region_name": "North"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = srv.do(t, http.MethodPut, "/api/region", map[string]any{"region_name": "North"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodPut, withSecret("/api/region"), map[string]any{"region_name": "North", "map_zoom": 11})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[map[string]string](t, w)
	assert.NotEmpty(t, created["id"])

	w = srv.do(t, http.MethodPut, withSecret("/api/region"), map[string]any{"hero_title": "Welcome"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Region updated", decode[map[string]string](t, w)["message"])

	region := decode[domain.Region](t, srv.do(t, http.MethodGet, "/api/region", nil))
	assert.Equal(t, created["id"], region.ID)
	assert.Equal(t, "North", region.RegionName)
	assert.Equal(t, "Welcome", region.HeroTitle)
	assert.Equal(t, 11, region.MapZoom)
	assert.False(t, region.Placeholder)
}

func TestPutRegionBadInput(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPut, withSecret("/api/region"), "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, withSecret("/api/region"), map[string]any{"map_zoom": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegionStoreDown(t *testing.T) {
	srv := newTestServerWith(t, testOptions, func(s *Services) {
		s.Region = downRegionService{}
	})

	w := srv.do(t, http.MethodGet, "/api/region", nil)
	require.Equal(t, http.StatusOK, w.Code, "readers get the default instead of an error")
	assert.True(t, decode[domain.Region](t, w).Placeholder)

	w = srv.do(t, http.MethodPut, withSecret("/api/region"), map[string]any{"region_name": "North"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
