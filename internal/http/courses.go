package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/access"
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/entities"
)

type createCourseRequest struct {
	CareerID    uint   `json:"career_id" form:"career_id" binding:"required"`
	Title       string `json:"title" form:"title" binding:"required,max=150"`
	Description string `json:"description" form:"description" binding:"max=2000"`
}

type updateCourseRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=150"`
	Description string `json:"description" form:"description" binding:"max=2000"`
}

type CoursesController struct {
	courses     CourseStore
	enrollments EnrollmentStore
	auditor     AuditLog
	guard       *access.Guard[uint, *entities.Course]
}

func NewCoursesController(courses CourseStore, enrollments EnrollmentStore, auditor AuditLog) *CoursesController {
	return &CoursesController{
		courses:     courses,
		enrollments: enrollments,
		auditor:     auditor,
		guard:       access.NewGuard("course", courses.GetByID),
	}
}

// List returns all courses with rating count and average.
// GET /courses
func (cc *CoursesController) List(c *gin.Context) {
	courses, err := cc.courses.ListSummaries(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Get returns one course with its rating aggregates.
// GET /courses/:id
func (cc *CoursesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := cc.courses.GetSummary(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get course")
		return
	}
	c.JSON(http.StatusOK, course)
}

// Create adds a course to an existing career.
// POST /courses/create
func (cc *CoursesController) Create(c *gin.Context) {
	var req createCourseRequest
	if !bindRequest(c, &req) {
		return
	}
	user := auth.CurrentUser(c)

	course := &entities.Course{
		UserID:      user.ID,
		CareerID:    req.CareerID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := cc.courses.Create(c.Request.Context(), course); err != nil {
		respondDomainError(c, err, "create course")
		return
	}

	cc.auditor.LogChange(user.ID.String(), entities.AuditEventCreate, "course", courseID(course), course.Title)
	respondCreated(c, course)
}

// Update edits a course. Only the owner may do this.
// PUT /courses/:id/update
func (cc *CoursesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	course, err := cc.guard.Authorize(c.Request.Context(), id, user.ID)
	if err != nil {
		respondDomainError(c, err, "update course")
		return
	}

	var req updateCourseRequest
	if !bindRequest(c, &req) {
		return
	}
	course.Title = req.Title
	course.Description = req.Description

	if err := cc.courses.Update(c.Request.Context(), course); err != nil {
		respondDomainError(c, err, "update course")
		return
	}

	cc.auditor.LogChange(user.ID.String(), entities.AuditEventUpdate, "course", courseID(course), course.Title)
	c.JSON(http.StatusOK, course)
}

// Delete removes a course with its ratings and enrollments. Only the owner may do this.
// DELETE /courses/:id/delete
func (cc *CoursesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	course, err := cc.guard.Authorize(c.Request.Context(), id, user.ID)
	if err != nil {
		respondDomainError(c, err, "delete course")
		return
	}

	if err := cc.courses.Delete(c.Request.Context(), course.ID); err != nil {
		respondDomainError(c, err, "delete course")
		return
	}

	cc.auditor.LogDelete(user.ID.String(), "course", courseID(course), course.Title)
	c.Status(http.StatusNoContent)
}

// Enroll signs the caller up for a course.
// POST /courses/:id/enroll
func (cc *CoursesController) Enroll(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := cc.enrollments.Enroll(c.Request.Context(), auth.CurrentUser(c).ID, id)
	if err != nil {
		respondDomainError(c, err, "enroll")
		return
	}
	respondCreated(c, enrollment)
}

// Unenroll removes the caller from a course.
// DELETE /courses/:id/enroll
func (cc *CoursesController) Unenroll(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.enrollments.Unenroll(c.Request.Context(), auth.CurrentUser(c).ID, id); err != nil {
		respondDomainError(c, err, "unenroll")
		return
	}
	respondSuccess(c, "unenrolled")
}

func courseID(course *entities.Course) string {
	return strconv.FormatUint(uint64(course.ID), 10)
}
