package service

import (
	"context"
	"fmt"
	"time"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/repository"
)

type bookingService struct {
	bookingRepo      repository.BookingRepository
	dealRepo         repository.DealRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	emailService     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	dealRepo repository.DealRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	emailService EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		dealRepo:         dealRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, guestID, dealID int32, start, end time.Time, note string) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, NewValidationError("end date must be after start date")
	}
	if start.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, NewValidationError("start date cannot be in the past")
	}

	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.DealType != domain.DealTypeAirbnb && deal.DealType != domain.DealTypeRent {
		return nil, NewValidationError("deal %d is not bookable", dealID)
	}
	if deal.Status != domain.DealStatusActive {
		return nil, NewValidationError("deal %d is no longer active", dealID)
	}
	if deal.OwnerID == guestID {
		return nil, NewValidationError("cannot book your own listing")
	}

	overlapping, err := s.bookingRepo.CountOverlapping(ctx, dealID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, NewValidationError("the requested dates are not available")
	}

	nights := int64(end.Sub(start).Hours() / 24)
	booking := &domain.Booking{
		DealID:     dealID,
		GuestID:    guestID,
		OwnerID:    deal.OwnerID,
		StartDate:  start,
		EndDate:    end,
		TotalCents: deal.PriceCents * nights,
		Status:     domain.BookingStatusPending,
		Note:       note,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyBookingRequested(ctx, deal, booking)
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, ownerID, bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed, true)
}

func (s *bookingService) CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, ownerID, bookingID, domain.BookingStatusConfirmed, domain.BookingStatusCompleted, true)
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Either side can cancel while the stay has not started.
	if booking.GuestID != userID && booking.OwnerID != userID {
		return nil, ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
		return nil, NewValidationError("booking %d is already %s", bookingID, booking.Status)
	}

	booking.Status = domain.BookingStatusCancelled
	if reason != "" {
		booking.Note = reason
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyBookingDecision(ctx, booking, "cancelled")
	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, guestID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByGuest(ctx, guestID, page, pageSize)
}

func (s *bookingService) ListMyHostings(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *bookingService) transition(ctx context.Context, ownerID, bookingID int32, from, to domain.BookingStatus, notify bool) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	if booking.Status != from {
		return nil, NewValidationError("booking %d is %s, expected %s", bookingID, booking.Status, from)
	}

	booking.Status = to
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if notify && to == domain.BookingStatusConfirmed {
		s.notifyBookingDecision(ctx, booking, "confirmed")
	}
	return booking, nil
}

func (s *bookingService) notifyBookingRequested(ctx context.Context, deal *domain.Deal, booking *domain.Booking) {
	guest, err := s.userRepo.GetByID(ctx, booking.GuestID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load guest for booking notification", "booking_id", booking.ID, "error", err)
		return
	}
	owner, err := s.userRepo.GetByID(ctx, deal.OwnerID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load owner for booking notification", "booking_id", booking.ID, "error", err)
		return
	}

	if err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:  deal.OwnerID,
		Title:   "New booking request",
		Message: fmt.Sprintf("%s requested to book %s", guest.Name, deal.Title),
		Attributes: map[string]string{
			"deal_id":    fmt.Sprintf("%d", deal.ID),
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}); err != nil {
		logger.ErrorContext(ctx, "failed to create booking request notification", "booking_id", booking.ID, "error", err)
	}
	if err := s.emailService.SendBookingRequestNotification(ctx, owner.Email, guest.Name, deal.Title, booking.StartDate, booking.EndDate); err != nil {
		logger.ErrorContext(ctx, "failed to send booking request email", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) notifyBookingDecision(ctx context.Context, booking *domain.Booking, decision string) {
	guest, err := s.userRepo.GetByID(ctx, booking.GuestID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load guest for decision notification", "booking_id", booking.ID, "error", err)
		return
	}
	deal, err := s.dealRepo.GetByID(ctx, booking.DealID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load deal for decision notification", "booking_id", booking.ID, "error", err)
		return
	}

	if err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:  booking.GuestID,
		Title:   fmt.Sprintf("Booking %s", decision),
		Message: fmt.Sprintf("Your booking for %s was %s", deal.Title, decision),
		Attributes: map[string]string{
			"deal_id":    fmt.Sprintf("%d", deal.ID),
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}); err != nil {
		logger.ErrorContext(ctx, "failed to create booking decision notification", "booking_id", booking.ID, "error", err)
	}
	if err := s.emailService.SendBookingDecisionNotification(ctx, guest.Email, deal.Title, decision); err != nil {
		logger.ErrorContext(ctx, "failed to send booking decision email", "booking_id", booking.ID, "error", err)
	}
}
