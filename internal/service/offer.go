package service

import (
	"context"
	"fmt"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/repository"
)

type offerService struct {
	offerRepo        repository.OfferRepository
	dealRepo         repository.DealRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	emailService     EmailService
}

func NewOfferService(
	offerRepo repository.OfferRepository,
	dealRepo repository.DealRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	emailService EmailService,
) OfferService {
	return &offerService{
		offerRepo:        offerRepo,
		dealRepo:         dealRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
	}
}

func (s *offerService) CreateOffer(ctx context.Context, offer *domain.Offer) error {
	if offer.OfferPriceCents <= 0 {
		return NewValidationError("offer price must be positive")
	}
	if offer.WithFinancing && offer.TermYears <= 0 {
		return NewValidationError("financing term must be at least one year")
	}

	deal, err := s.dealRepo.GetByID(ctx, offer.DealID)
	if err != nil {
		return err
	}
	if deal.OwnerID == offer.BuyerID {
		return NewValidationError("cannot make an offer on your own listing")
	}
	if deal.Status != domain.DealStatusActive {
		return NewValidationError("deal %d is no longer active", deal.ID)
	}
	if offer.WithFinancing && !deal.OwnerFinancingAvailable {
		return NewValidationError("deal %d does not offer owner financing", deal.ID)
	}

	offer.OwnerID = deal.OwnerID
	offer.Status = domain.OfferStatusPending
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return err
	}

	// Notifications ride on the durable write; failures are logged, never
	// surfaced to the buyer.
	s.notifyOfferReceived(ctx, deal, offer)
	return nil
}

func (s *offerService) AcceptOffer(ctx context.Context, ownerID, offerID int32) (*domain.Offer, error) {
	return s.decideOffer(ctx, ownerID, offerID, domain.OfferStatusAccepted)
}

func (s *offerService) RejectOffer(ctx context.Context, ownerID, offerID int32) (*domain.Offer, error) {
	return s.decideOffer(ctx, ownerID, offerID, domain.OfferStatusRejected)
}

func (s *offerService) decideOffer(ctx context.Context, ownerID, offerID int32, decision domain.OfferStatus) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	if offer.Status != domain.OfferStatusPending {
		return nil, NewValidationError("offer %d is already %s", offerID, offer.Status)
	}

	offer.Status = decision
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}

	s.notifyOfferDecision(ctx, offer, decision)
	return offer, nil
}

func (s *offerService) WithdrawOffer(ctx context.Context, buyerID, offerID int32) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.BuyerID != buyerID {
		return nil, ErrUnauthorized
	}
	if offer.Status != domain.OfferStatusPending {
		return nil, NewValidationError("offer %d is already %s", offerID, offer.Status)
	}

	offer.Status = domain.OfferStatusWithdrawn
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *offerService) ListDealOffers(ctx context.Context, ownerID, dealID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, 0, err
	}
	if deal.OwnerID != ownerID {
		return nil, 0, ErrUnauthorized
	}
	return s.offerRepo.ListByDeal(ctx, dealID, page, pageSize)
}

func (s *offerService) ListMyOffers(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	return s.offerRepo.ListByBuyer(ctx, buyerID, page, pageSize)
}

func (s *offerService) notifyOfferReceived(ctx context.Context, deal *domain.Deal, offer *domain.Offer) {
	buyer, err := s.userRepo.GetByID(ctx, offer.BuyerID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load buyer for offer notification", "offer_id", offer.ID, "error", err)
		return
	}
	owner, err := s.userRepo.GetByID(ctx, deal.OwnerID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load owner for offer notification", "offer_id", offer.ID, "error", err)
		return
	}

	if err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:  deal.OwnerID,
		Title:   "New offer received",
		Message: fmt.Sprintf("%s made an offer on %s", buyer.Name, deal.Title),
		Attributes: map[string]string{
			"deal_id":  fmt.Sprintf("%d", deal.ID),
			"offer_id": fmt.Sprintf("%d", offer.ID),
		},
	}); err != nil {
		logger.ErrorContext(ctx, "failed to create offer received notification", "offer_id", offer.ID, "error", err)
	}
	if err := s.emailService.SendOfferReceivedNotification(ctx, owner.Email, buyer.Name, deal.Title); err != nil {
		logger.ErrorContext(ctx, "failed to send offer received email", "offer_id", offer.ID, "error", err)
	}
}

func (s *offerService) notifyOfferDecision(ctx context.Context, offer *domain.Offer, decision domain.OfferStatus) {
	buyer, err := s.userRepo.GetByID(ctx, offer.BuyerID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load buyer for decision notification", "offer_id", offer.ID, "error", err)
		return
	}
	deal, err := s.dealRepo.GetByID(ctx, offer.DealID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load deal for decision notification", "offer_id", offer.ID, "error", err)
		return
	}

	if err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:  offer.BuyerID,
		Title:   fmt.Sprintf("Offer %s", decision),
		Message: fmt.Sprintf("Your offer on %s was %s", deal.Title, decision),
		Attributes: map[string]string{
			"deal_id":  fmt.Sprintf("%d", deal.ID),
			"offer_id": fmt.Sprintf("%d", offer.ID),
		},
	}); err != nil {
		logger.ErrorContext(ctx, "failed to create offer decision notification", "offer_id", offer.ID, "error", err)
	}
	if err := s.emailService.SendOfferDecisionNotification(ctx, buyer.Email, deal.Title, string(decision)); err != nil {
		logger.ErrorContext(ctx, "failed to send offer decision email", "offer_id", offer.ID, "error", err)
	}
}
