package service

import (
	"context"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type insightService struct {
	insightRepo repository.InsightRepository
}

func NewInsightService(insightRepo repository.InsightRepository) InsightService {
	return &insightService{insightRepo: insightRepo}
}

func (s *insightService) CreateInsight(ctx context.Context, insight *domain.Insight) error {
	if insight.Title == "" {
		return NewValidationError("title is required")
	}
	if insight.Body == "" {
		return NewValidationError("body is required")
	}
	return s.insightRepo.Create(ctx, insight)
}

func (s *insightService) GetInsight(ctx context.Context, id int32) (*domain.Insight, error) {
	return s.insightRepo.GetByID(ctx, id)
}

func (s *insightService) ListInsights(ctx context.Context, page, pageSize int32) ([]domain.Insight, int32, error) {
	return s.insightRepo.List(ctx, page, pageSize)
}
