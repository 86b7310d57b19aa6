package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/entities"
)

// Each controller depends on the narrow slice of a repository it uses.

// UserStore is implemented by database/users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	UpdateProfile(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CareerStore is implemented by database/careers.
type CareerStore interface {
	Create(ctx context.Context, career *entities.Career) error
	GetByID(ctx context.Context, id uint) (*entities.Career, error)
	List(ctx context.Context) ([]entities.Career, error)
	Update(ctx context.Context, career *entities.Career) error
	Delete(ctx context.Context, id uint) error
}

// CourseStore is implemented by database/courses.
type CourseStore interface {
	Create(ctx context.Context, course *entities.Course) error
	GetByID(ctx context.Context, id uint) (*entities.Course, error)
	GetSummary(ctx context.Context, id uint) (*entities.CourseSummary, error)
	ListSummaries(ctx context.Context) ([]entities.CourseSummary, error)
	ListByCareer(ctx context.Context, careerID uint) ([]entities.CourseSummary, error)
	Update(ctx context.Context, course *entities.Course) error
	Delete(ctx context.Context, id uint) error
}

// RatingStore is implemented by database/ratings.
type RatingStore interface {
	Toggle(ctx context.Context, userID uuid.UUID, courseID uint, value int) (bool, error)
	Get(ctx context.Context, userID uuid.UUID, courseID uint) (*entities.Rating, error)
}

// EnrollmentStore is implemented by database/enrollments.
type EnrollmentStore interface {
	Enroll(ctx context.Context, userID uuid.UUID, courseID uint) (*entities.Enrollment, error)
	Unenroll(ctx context.Context, userID uuid.UUID, courseID uint) error
	ListCourses(ctx context.Context, userID uuid.UUID) ([]entities.Course, error)
}

// AuditLog is implemented by audit.Service.
type AuditLog interface {
	LogAuth(userID, action, ipAddr, userAgent string, err error)
	LogChange(userID string, eventType entities.AuditEventType, entityType, entityID, description string)
	LogDelete(userID, entityType, entityID, entityName string)
	GetEvents(ctx context.Context, userID string, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(ctx context.Context, eventType entities.AuditEventType, userID string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// LoginLimiter is implemented by auth.RateLimiter.
type LoginLimiter interface {
	Allow(ip, username string) (bool, time.Duration)
	RecordFailure(ip, username string) (bool, time.Duration)
	RecordSuccess(ip, username string)
}

// noopAudit stands in when no audit trail is configured.
type noopAudit struct{}

func (noopAudit) LogAuth(string, string, string, string, error)                     {}
func (noopAudit) LogChange(string, entities.AuditEventType, string, string, string) {}
func (noopAudit) LogDelete(string, string, string, string)                          {}
func (noopAudit) GetEvents(context.Context, string, int, int) ([]entities.AuditEvent, int64, error) {
	return nil, 0, nil
}
func (noopAudit) GetEventsByType(context.Context, entities.AuditEventType, string, int, int) ([]entities.AuditEvent, int64, error) {
	return nil, 0, nil
}
