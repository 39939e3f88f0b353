package service

import (
	"context"
	"errors"
	"fmt"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/repository"
	"porchlight-backend/internal/repository/postgres"
	"porchlight-backend/internal/video"
)

type videoService struct {
	dealRepo    repository.DealRepository
	insightRepo repository.InsightRepository
	userRepo    repository.UserRepository
	generator   video.Generator
	creditCost  int32
}

func NewVideoService(
	dealRepo repository.DealRepository,
	insightRepo repository.InsightRepository,
	userRepo repository.UserRepository,
	generator video.Generator,
	creditCost int32,
) VideoService {
	return &videoService{
		dealRepo:    dealRepo,
		insightRepo: insightRepo,
		userRepo:    userRepo,
		generator:   generator,
		creditCost:  creditCost,
	}
}

// GenerateDealVideo produces a listing video and charges the owner. The
// balance is checked up front for a fast rejection, but the debit happens
// only after generation succeeds, so a failed upstream call costs nothing.
// The conditional debit re-checks the balance, which covers the window
// where a concurrent spend drained it.
func (s *videoService) GenerateDealVideo(ctx context.Context, userID, dealID int32) (*domain.Deal, int32, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, 0, err
	}
	if deal.OwnerID != userID {
		return nil, 0, ErrUnauthorized
	}

	balance, err := s.userRepo.GetCredits(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if balance < s.creditCost {
		return nil, balance, &InsufficientCreditsError{Required: s.creditCost, Current: balance}
	}

	logger.ExternalServiceCall("video", "generate", "deal_id", dealID)
	resp, err := s.generator.Generate(ctx, video.Request{
		Description:   deal.Description,
		Price:         float64(finance.Cents(deal.PriceCents).Dollars()),
		Bedrooms:      deal.Bedrooms,
		Bathrooms:     deal.Bathrooms,
		SquareFootage: deal.SquareFootage,
		Photos:        deal.Photos,
	})
	logger.ExternalServiceResult("video", "generate", err, "deal_id", dealID)
	if err != nil {
		return nil, balance, err
	}

	newBalance, err := s.userRepo.SpendCredits(ctx, userID, s.creditCost, fmt.Sprintf("Listing video for deal %d", dealID))
	if err != nil {
		if errors.Is(err, postgres.ErrInsufficientCredits) {
			return nil, balance, &InsufficientCreditsError{Required: s.creditCost, Current: balance}
		}
		return nil, balance, err
	}

	if err := s.dealRepo.SetVideo(ctx, dealID, resp.VideoURL, resp.VideoKey); err != nil {
		// The charge stands; the video exists and the URL is in the
		// response even if the listing row lagged.
		logger.ErrorContext(ctx, "failed to store video on deal", "deal_id", dealID, "error", err)
	}
	deal.VideoURL = resp.VideoURL
	deal.VideoKey = resp.VideoKey
	return deal, newBalance, nil
}

// GenerateInsightVideo produces a video for an editorial insight post.
// Insight videos are not metered.
func (s *videoService) GenerateInsightVideo(ctx context.Context, userID, insightID int32) (*domain.Insight, error) {
	insight, err := s.insightRepo.GetByID(ctx, insightID)
	if err != nil {
		return nil, err
	}
	if insight.AuthorID != userID {
		return nil, ErrUnauthorized
	}

	logger.ExternalServiceCall("video", "generate", "insight_id", insightID)
	resp, err := s.generator.Generate(ctx, video.Request{
		Description: insight.Title + "\n\n" + insight.Body,
		Photos:      insight.Photos,
	})
	logger.ExternalServiceResult("video", "generate", err, "insight_id", insightID)
	if err != nil {
		return nil, err
	}

	if err := s.insightRepo.SetVideo(ctx, insightID, resp.VideoURL, resp.VideoKey); err != nil {
		return nil, err
	}
	insight.VideoURL = resp.VideoURL
	insight.VideoKey = resp.VideoKey
	return insight, nil
}
