package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

// maxWorkoutsBody caps the bulk replace payload.
const maxWorkoutsBody = 1 << 20

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	now            func() time.Time
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, now: time.Now}
}

// ListWorkouts returns the raw workout set for the admin console.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// ReplaceWorkouts swaps the entire workout set for the posted array.
func (h *WorkoutHandler) ReplaceWorkouts(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWorkoutsBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large (limit %d bytes)", tooLarge.Limit))
			return
		}
		abortWithError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}
	// A lone object would otherwise be rejected by Unmarshal with a less
	// useful message.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		abortWithError(c, http.StatusBadRequest, "Request body must be an array of workouts")
		return
	}

	var workouts []domain.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workouts: "+err.Error())
		return
	}

	stored, err := h.workoutService.ReplaceAllWorkouts(c.Request.Context(), workouts)
	if err != nil {
		respondError(c, err, "Failed to save workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workouts saved", "count": len(stored)})
}

// GetSchedule builds the workout finder view. ?date=YYYY-MM-DD picks the
// reference day (default today); ?calendar=true checks monthly recurrences
// against tomorrow's real date.
func (h *WorkoutHandler) GetSchedule(c *gin.Context) {
	today := h.now()
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation(time.DateOnly, raw, today.Location())
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		today = d
	}

	calendar := false
	if raw := c.Query("calendar"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "calendar must be true or false")
			return
		}
		calendar = v
	}

	sched, err := h.workoutService.ScheduleFor(c.Request.Context(), today, calendar)
	if err != nil {
		respondError(c, err, "Failed to build schedule")
		return
	}
	c.JSON(http.StatusOK, sched)
}
