package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizScores holds the eight quiz section scores submitted for a recommendation.
// Each score is a percentage.
type QuizScores struct {
	DatabaseFundamentals float64 `json:"database_fundamentals" form:"database_fundamentals" binding:"gte=0,lte=100"`
	ComputerArchitecture float64 `json:"computer_architecture" form:"computer_architecture" binding:"gte=0,lte=100"`
	DistributedSystems   float64 `json:"distributed_systems" form:"distributed_systems" binding:"gte=0,lte=100"`
	CyberSecurity        float64 `json:"cyber_security" form:"cyber_security" binding:"gte=0,lte=100"`
	Networking           float64 `json:"networking" form:"networking" binding:"gte=0,lte=100"`
	SoftwareDevelopment  float64 `json:"software_development" form:"software_development" binding:"gte=0,lte=100"`
	ProgrammingSkills    float64 `json:"programming_skills" form:"programming_skills" binding:"gte=0,lte=100"`
	ProjectManagement    float64 `json:"project_management" form:"project_management" binding:"gte=0,lte=100"`
}

// Vector returns the scores in the fixed feature order the classifier expects.
func (q QuizScores) Vector() []float64 {
	return []float64{
		q.DatabaseFundamentals,
		q.ComputerArchitecture,
		q.DistributedSystems,
		q.CyberSecurity,
		q.Networking,
		q.SoftwareDevelopment,
		q.ProgrammingSkills,
		q.ProjectManagement,
	}
}

type Recommendation struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:varchar(36);index;not null" json:"user_id"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Scores     QuizScores `gorm:"type:text;serializer:json" json:"scores"`
	Category   string     `gorm:"size:100;not null" json:"category"`
	Confidence float64    `json:"confidence"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
