package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/access"
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/entities"
)

type careerRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=150"`
	Description string `json:"description" form:"description" binding:"max=2000"`
}

type CareersController struct {
	careers CareerStore
	courses CourseStore
	auditor AuditLog
	guard   *access.Guard[uint, *entities.Career]
}

func NewCareersController(careers CareerStore, courses CourseStore, auditor AuditLog) *CareersController {
	return &CareersController{
		careers: careers,
		courses: courses,
		auditor: auditor,
		guard:   access.NewGuard("career", careers.GetByID),
	}
}

// List returns all careers.
// GET /careers
func (cc *CareersController) List(c *gin.Context) {
	careers, err := cc.careers.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list careers")
		return
	}
	c.JSON(http.StatusOK, careers)
}

// Get returns one career.
// GET /careers/:id
func (cc *CareersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	career, err := cc.careers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get career")
		return
	}
	c.JSON(http.StatusOK, career)
}

// Courses lists the courses of a career with their rating aggregates.
// GET /careers/:id/courses
func (cc *CareersController) Courses(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	courses, err := cc.courses.ListByCareer(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "list career courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Create adds a career owned by the caller.
// POST /careers/create
func (cc *CareersController) Create(c *gin.Context) {
	var req careerRequest
	if !bindRequest(c, &req) {
		return
	}
	user := auth.CurrentUser(c)

	career := &entities.Career{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := cc.careers.Create(c.Request.Context(), career); err != nil {
		respondDomainError(c, err, "create career")
		return
	}

	cc.auditor.LogChange(user.ID.String(), entities.AuditEventCreate, "career", strconv.FormatUint(uint64(career.ID), 10), career.Title)
	respondCreated(c, career)
}

// Update edits a career. Only the owner may do this.
// PUT /careers/:id/update
func (cc *CareersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	career, err := cc.guard.Authorize(c.Request.Context(), id, user.ID)
	if err != nil {
		respondDomainError(c, err, "update career")
		return
	}

	var req careerRequest
	if !bindRequest(c, &req) {
		return
	}
	career.Title = req.Title
	career.Description = req.Description

	if err := cc.careers.Update(c.Request.Context(), career); err != nil {
		respondDomainError(c, err, "update career")
		return
	}

	cc.auditor.LogChange(user.ID.String(), entities.AuditEventUpdate, "career", strconv.FormatUint(uint64(career.ID), 10), career.Title)
	c.JSON(http.StatusOK, career)
}

// Delete removes a career and its courses. Only the owner may do this.
// DELETE /careers/:id/delete
func (cc *CareersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	career, err := cc.guard.Authorize(c.Request.Context(), id, user.ID)
	if err != nil {
		respondDomainError(c, err, "delete career")
		return
	}

	if err := cc.careers.Delete(c.Request.Context(), career.ID); err != nil {
		respondDomainError(c, err, "delete career")
		return
	}

	cc.auditor.LogDelete(user.ID.String(), "career", strconv.FormatUint(uint64(career.ID), 10), career.Title)
	c.Status(http.StatusNoContent)
}
