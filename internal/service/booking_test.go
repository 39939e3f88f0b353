package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

func bookableDeal() *domain.Deal {
	return &domain.Deal{
		ID:         5,
		OwnerID:    2,
		Title:      "Beach condo",
		DealType:   domain.DealTypeAirbnb,
		Status:     domain.DealStatusActive,
		PriceCents: 15000, // $150/night
	}
}

func TestBookingService_RequestBooking(t *testing.T) {
	ctx := context.Background()
	start := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 3)

	t.Run("ComputesNightlyTotal", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		dealRepo := new(MockDealRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewBookingService(bookingRepo, dealRepo, userRepo, noteRepo, emailSvc)

		dealRepo.On("GetByID", ctx, int32(5)).Return(bookableDeal(), nil)
		bookingRepo.On("CountOverlapping", ctx, int32(5), start, end).Return(int32(0), nil).Once()
		bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.TotalCents == 45000 && b.Status == domain.BookingStatusPending && b.OwnerID == 2
		})).Return(nil).Once()
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Name: "Guest", Email: "g@test.com"}, nil).Once()
		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Name: "Host", Email: "h@test.com"}, nil).Once()
		noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		emailSvc.On("SendBookingRequestNotification", ctx, "h@test.com", "Guest", "Beach condo", start, end).Return(nil).Once()

		booking, err := svc.RequestBooking(ctx, 1, 5, start, end, "late arrival")
		assert.NoError(t, err)
		assert.Equal(t, int64(45000), booking.TotalCents)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("RejectsOverlap", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		dealRepo := new(MockDealRepo)
		svc := service.NewBookingService(bookingRepo, dealRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		dealRepo.On("GetByID", ctx, int32(5)).Return(bookableDeal(), nil).Once()
		bookingRepo.On("CountOverlapping", ctx, int32(5), start, end).Return(int32(1), nil).Once()

		_, err := svc.RequestBooking(ctx, 1, 5, start, end, "")
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsInvertedDates", func(t *testing.T) {
		svc := service.NewBookingService(new(MockBookingRepo), new(MockDealRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		_, err := svc.RequestBooking(ctx, 1, 5, end, start, "")
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("RejectsNonBookableDealType", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewBookingService(new(MockBookingRepo), dealRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		sale := bookableDeal()
		sale.DealType = domain.DealTypeSale
		dealRepo.On("GetByID", ctx, int32(5)).Return(sale, nil).Once()

		_, err := svc.RequestBooking(ctx, 1, 5, start, end, "")
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestBookingService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("ConfirmRequiresOwner", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := service.NewBookingService(bookingRepo, new(MockDealRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		bookingRepo.On("GetByID", ctx, int32(9)).Return(&domain.Booking{ID: 9, GuestID: 1, OwnerID: 2, Status: domain.BookingStatusPending}, nil).Once()

		_, err := svc.ConfirmBooking(ctx, 99, 9)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("CompleteOnlyFromConfirmed", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := service.NewBookingService(bookingRepo, new(MockDealRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		bookingRepo.On("GetByID", ctx, int32(9)).Return(&domain.Booking{ID: 9, GuestID: 1, OwnerID: 2, Status: domain.BookingStatusPending}, nil).Once()

		_, err := svc.CompleteBooking(ctx, 2, 9)
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("GuestCanCancel", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		dealRepo := new(MockDealRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewBookingService(bookingRepo, dealRepo, userRepo, noteRepo, emailSvc)

		bookingRepo.On("GetByID", ctx, int32(9)).Return(&domain.Booking{ID: 9, DealID: 5, GuestID: 1, OwnerID: 2, Status: domain.BookingStatusConfirmed}, nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusCancelled && b.Note == "plans changed"
		})).Return(nil).Once()
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "g@test.com"}, nil).Once()
		dealRepo.On("GetByID", ctx, int32(5)).Return(bookableDeal(), nil).Once()
		noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		emailSvc.On("SendBookingDecisionNotification", ctx, "g@test.com", "Beach condo", "cancelled").Return(nil).Once()

		booking, err := svc.CancelBooking(ctx, 1, 9, "plans changed")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	})
}
