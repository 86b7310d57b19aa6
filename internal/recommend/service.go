package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/entities"
)

// ErrUnavailable is returned when no model is configured.
var ErrUnavailable = errors.New("recommendation model is not configured")

// HistoryStore persists predictions.
type HistoryStore interface {
	Create(ctx context.Context, rec *entities.Recommendation) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Recommendation, error)
}

type Service struct {
	predictor Predictor
	history   HistoryStore
}

// NewService wires a predictor to the history store. predictor may be nil.
func NewService(predictor Predictor, history HistoryStore) *Service {
	return &Service{predictor: predictor, history: history}
}

func (s *Service) Available() bool {
	return s.predictor != nil
}

// Recommend predicts a category for the scores and records it for the user.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID, scores entities.QuizScores) (*entities.Recommendation, error) {
	if s.predictor == nil {
		return nil, ErrUnavailable
	}

	prediction, err := s.predictor.Predict(scores.Vector())
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	rec := &entities.Recommendation{
		UserID:     userID,
		Scores:     scores,
		Category:   prediction.Category,
		Confidence: prediction.Confidence,
	}
	if err := s.history.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// History returns the user's past predictions, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Recommendation, error) {
	return s.history.ListForUser(ctx, userID, limit)
}
