package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/auth"
)

// rateRequest carries the rating toggle. A value in [1,5] rates the course,
// any other value retracts an existing rating.
type rateRequest struct {
	CourseID uint `json:"course_id" form:"course_id" binding:"required"`
	Value    *int `json:"value" form:"value" binding:"required"`
}

// RateResponse reports whether the caller has a rating after the request.
type RateResponse struct {
	HasRated bool `json:"has_rated"`
}

type RatingsController struct {
	ratings RatingStore
}

func NewRatingsController(ratings RatingStore) *RatingsController {
	return &RatingsController{ratings: ratings}
}

// Rate toggles the caller's rating of a course.
// POST /rates
func (rc *RatingsController) Rate(c *gin.Context) {
	var req rateRequest
	if !bindRequest(c, &req) {
		return
	}

	hasRated, err := rc.ratings.Toggle(c.Request.Context(), auth.CurrentUser(c).ID, req.CourseID, *req.Value)
	if err != nil {
		respondDomainError(c, err, "rate course")
		return
	}

	status := http.StatusOK
	if hasRated {
		status = http.StatusCreated
	}
	c.JSON(status, RateResponse{HasRated: hasRated})
}

// Get returns the caller's rating of a course, or 404 when there is none.
// GET /rates/:course_id
func (rc *RatingsController) Get(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	rating, err := rc.ratings.Get(c.Request.Context(), auth.CurrentUser(c).ID, courseID)
	if err != nil {
		respondDomainError(c, err, "get rating")
		return
	}
	c.JSON(http.StatusOK, rating)
}
