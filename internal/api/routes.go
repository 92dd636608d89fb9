package api

import (
	"net/http"
	"time"

	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Options tunes the router-wide middleware.
type Options struct {
	RequestTimeout    time.Duration
	RequestsPerMinute int
	Burst             int
}

// Services bundles what the handlers call.
type Services struct {
	Region   service.RegionService
	Location service.LocationService
	Workout  service.WorkoutService
	Media    service.MediaService
}

func SetupRoutes(router *gin.Engine, opts Options, gate service.SecretGate, svc Services) {
	regionHandler := NewRegionHandler(svc.Region)
	locationHandler := NewLocationHandler(svc.Location)
	workoutHandler := NewWorkoutHandler(svc.Workout)
	mediaHandler := NewMediaHandler(svc.Media)

	router.Use(RequestLogger(), gin.Recovery(), RequestTimeout(opts.RequestTimeout))

	// One bucket per client across every gated route, so guessing the
	// secret on one endpoint spends the budget for all of them.
	adminLimiter := NewRateLimiter(opts.RequestsPerMinute, opts.Burst)
	// The region endpoint has always answered 401; the rest answer 403.
	regionAdmin := []gin.HandlerFunc{RateLimit(adminLimiter), SecretMiddleware(gate, http.StatusUnauthorized)}
	admin := []gin.HandlerFunc{RateLimit(adminLimiter), SecretMiddleware(gate, http.StatusForbidden)}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		// --- Region ---
		apiGroup.GET("/region", regionHandler.GetRegion)
		apiGroup.PUT("/region", append(regionAdmin, regionHandler.UpsertRegion)...)

		// --- Locations ---
		apiGroup.GET("/locations", locationHandler.ListLocations)
		apiGroup.GET("/locations/:id", locationHandler.GetLocation)
		apiGroup.POST("/locations", append(admin, locationHandler.CreateLocation)...)
		apiGroup.PUT("/locations", append(admin, locationHandler.UpdateLocation)...)
		apiGroup.DELETE("/locations", append(admin, locationHandler.DeleteLocation)...)

		// --- Workouts ---
		apiGroup.GET("/workouts", append(admin, workoutHandler.ListWorkouts)...)
		apiGroup.POST("/workouts", append(admin, workoutHandler.ReplaceWorkouts)...)
		apiGroup.GET("/schedule", workoutHandler.GetSchedule)

		// --- Uploads ---
		apiGroup.POST("/uploads", append(admin, mediaHandler.RequestUpload)...)
	}
}
