package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/entities"
	"github.com/mrlokans/careerpath/internal/recommend"
)

type RecommendationsController struct {
	service *recommend.Service
}

func NewRecommendationsController(service *recommend.Service) *RecommendationsController {
	return &RecommendationsController{service: service}
}

// Recommend predicts a career category from the submitted quiz scores.
// POST /recommendations
func (rc *RecommendationsController) Recommend(c *gin.Context) {
	if rc.service == nil || !rc.service.Available() {
		respondDomainError(c, recommend.ErrUnavailable, "recommend")
		return
	}

	var scores entities.QuizScores
	if !bindRequest(c, &scores) {
		return
	}

	rec, err := rc.service.Recommend(c.Request.Context(), auth.CurrentUser(c).ID, scores)
	if err != nil {
		respondDomainError(c, err, "recommend")
		return
	}
	respondCreated(c, rec)
}

// History lists the caller's previous recommendations.
// GET /recommendations
func (rc *RecommendationsController) History(c *gin.Context) {
	if rc.service == nil {
		c.JSON(http.StatusOK, []entities.Recommendation{})
		return
	}

	limit, _ := parsePagination(c, 50, 200)
	recs, err := rc.service.History(c.Request.Context(), auth.CurrentUser(c).ID, limit)
	if err != nil {
		respondInternalError(c, err, "list recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}
