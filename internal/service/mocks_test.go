package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/payments"
	"porchlight-backend/internal/repository"
	"porchlight-backend/internal/video"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetCredits(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepo) AddCredits(ctx context.Context, userID, amount int32, txnType domain.CreditTransactionType, description, sessionID string) (int32, error) {
	args := m.Called(ctx, userID, amount, txnType, description, sessionID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepo) SpendCredits(ctx context.Context, userID, amount int32, description string) (int32, error) {
	args := m.Called(ctx, userID, amount, description)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepo) ListCreditTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.CreditTransaction), args.Get(1).(int32), args.Error(2)
}

type MockDealRepo struct{ mock.Mock }

func (m *MockDealRepo) Create(ctx context.Context, deal *domain.Deal) error {
	return m.Called(ctx, deal).Error(0)
}

func (m *MockDealRepo) GetByID(ctx context.Context, id int32) (*domain.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepo) Update(ctx context.Context, deal *domain.Deal) error {
	return m.Called(ctx, deal).Error(0)
}

func (m *MockDealRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDealRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Deal, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Deal), args.Get(1).(int32), args.Error(2)
}

func (m *MockDealRepo) Search(ctx context.Context, filter repository.DealFilter, page, pageSize int32) ([]domain.Deal, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Deal), args.Get(1).(int32), args.Error(2)
}

func (m *MockDealRepo) SetVideo(ctx context.Context, dealID int32, videoURL, videoKey string) error {
	return m.Called(ctx, dealID, videoURL, videoKey).Error(0)
}

type MockOfferRepo struct{ mock.Mock }

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockOfferRepo) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockOfferRepo) ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	args := m.Called(ctx, dealID, page, pageSize)
	return args.Get(0).([]domain.Offer), args.Get(1).(int32), args.Error(2)
}

func (m *MockOfferRepo) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	args := m.Called(ctx, buyerID, page, pageSize)
	return args.Get(0).([]domain.Offer), args.Get(1).(int32), args.Error(2)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) ListByGuest(ctx context.Context, guestID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, guestID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) CountOverlapping(ctx context.Context, dealID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, dealID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, dealID, page, pageSize)
	return args.Get(0).([]domain.Review), args.Get(1).(int32), args.Error(2)
}

type MockLeadChargeRepo struct{ mock.Mock }

func (m *MockLeadChargeRepo) Create(ctx context.Context, charge *domain.LeadCharge) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *MockLeadChargeRepo) GetByID(ctx context.Context, id int32) (*domain.LeadCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeadCharge), args.Error(1)
}

func (m *MockLeadChargeRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.LeadCharge, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.LeadCharge), args.Error(1)
}

func (m *MockLeadChargeRepo) ListByProvider(ctx context.Context, providerID int32, status domain.LeadChargeStatus, page, pageSize int32) ([]domain.LeadCharge, int32, error) {
	args := m.Called(ctx, providerID, status, page, pageSize)
	return args.Get(0).([]domain.LeadCharge), args.Get(1).(int32), args.Error(2)
}

func (m *MockLeadChargeRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.LeadCharge, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.LeadCharge), args.Error(1)
}

func (m *MockLeadChargeRepo) MarkDisputedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockSettlementRepo struct{ mock.Mock }

func (m *MockSettlementRepo) GetProcessedSession(ctx context.Context, sessionID string) (*domain.ProcessedSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedSession), args.Error(1)
}

func (m *MockSettlementRepo) RecordSettlement(ctx context.Context, session *domain.ProcessedSession, invoiceIDs []int32, paymentMethod string) (bool, int32, error) {
	args := m.Called(ctx, session, invoiceIDs, paymentMethod)
	return args.Bool(0), args.Get(1).(int32), args.Error(2)
}

func (m *MockSettlementRepo) PurgeProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockInsightRepo struct{ mock.Mock }

func (m *MockInsightRepo) Create(ctx context.Context, insight *domain.Insight) error {
	return m.Called(ctx, insight).Error(0)
}

func (m *MockInsightRepo) GetByID(ctx context.Context, id int32) (*domain.Insight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Insight), args.Error(1)
}

func (m *MockInsightRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Insight, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Insight), args.Get(1).(int32), args.Error(2)
}

func (m *MockInsightRepo) SetVideo(ctx context.Context, insightID int32, videoURL, videoKey string) error {
	return m.Called(ctx, insightID, videoURL, videoKey).Error(0)
}

type MockProvider struct{ mock.Mock }

func (m *MockProvider) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*payments.PaymentIntent, error) {
	args := m.Called(ctx, amountCents, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PaymentIntent), args.Error(1)
}

func (m *MockProvider) RetrieveSession(ctx context.Context, sessionID string) (*payments.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.SessionStatus), args.Error(1)
}

func (m *MockProvider) RetrievePaymentIntent(ctx context.Context, intentID string) (*payments.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PaymentIntent), args.Error(1)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Generate(ctx context.Context, req video.Request) (*video.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Response), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendOfferReceivedNotification(ctx context.Context, ownerEmail, buyerName, dealTitle string) error {
	return m.Called(ctx, ownerEmail, buyerName, dealTitle).Error(0)
}

func (m *MockEmailService) SendOfferDecisionNotification(ctx context.Context, buyerEmail, dealTitle, decision string) error {
	return m.Called(ctx, buyerEmail, dealTitle, decision).Error(0)
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, guestName, dealTitle string, start, end time.Time) error {
	return m.Called(ctx, ownerEmail, guestName, dealTitle, start, end).Error(0)
}

func (m *MockEmailService) SendBookingDecisionNotification(ctx context.Context, guestEmail, dealTitle, decision string) error {
	return m.Called(ctx, guestEmail, dealTitle, decision).Error(0)
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email string, amountCents int64, description string) error {
	return m.Called(ctx, email, amountCents, description).Error(0)
}

func (m *MockEmailService) SendLeadChargeReminder(ctx context.Context, providerEmail string, amountCents int64, daysOutstanding int) error {
	return m.Called(ctx, providerEmail, amountCents, daysOutstanding).Error(0)
}
