package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/payments"
	"porchlight-backend/internal/repository"
)

// Metadata keys attached to provider sessions at creation and read back
// during verification.
const (
	metaUserID      = "user_id"
	metaUserEmail   = "user_email"
	metaPaymentType = "payment_type"
	metaCredits     = "credits_to_add"
	metaInvoiceIDs  = "invoice_ids"
)

type billingService struct {
	userRepo       repository.UserRepository
	leadChargeRepo repository.LeadChargeRepository
	settlementRepo repository.SettlementRepository
	provider       payments.Provider
	emailService   EmailService
	minChargeCents int64
	successURL     string
	cancelURL      string
}

func NewBillingService(
	userRepo repository.UserRepository,
	leadChargeRepo repository.LeadChargeRepository,
	settlementRepo repository.SettlementRepository,
	provider payments.Provider,
	emailService EmailService,
	minChargeCents int64,
	successURL, cancelURL string,
) BillingService {
	return &billingService{
		userRepo:       userRepo,
		leadChargeRepo: leadChargeRepo,
		settlementRepo: settlementRepo,
		provider:       provider,
		emailService:   emailService,
		minChargeCents: minChargeCents,
		successURL:     successURL,
		cancelURL:      cancelURL,
	}
}

func (s *billingService) CreateCreditCheckout(ctx context.Context, userID int32, amountCents int64) (*payments.CheckoutSession, error) {
	if amountCents < s.minChargeCents {
		return nil, NewValidationError("minimum charge is %d cents", s.minChargeCents)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	credits := finance.Cents(amountCents).Credits()
	return s.provider.CreateCheckoutSession(ctx, payments.CheckoutParams{
		AmountCents:   amountCents,
		Description:   fmt.Sprintf("%d Porchlight credits", credits),
		CustomerEmail: user.Email,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			metaUserID:      strconv.FormatInt(int64(userID), 10),
			metaUserEmail:   user.Email,
			metaPaymentType: string(domain.PaymentTypeCredits),
			metaCredits:     strconv.FormatInt(int64(credits), 10),
		},
	})
}

func (s *billingService) CreateInvoiceCheckout(ctx context.Context, userID int32, invoiceIDs []int32) (*payments.CheckoutSession, error) {
	if len(invoiceIDs) == 0 {
		return nil, NewValidationError("at least one invoice is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	charges, err := s.leadChargeRepo.GetByIDs(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}
	if len(charges) != len(invoiceIDs) {
		return nil, NewValidationError("one or more invoices do not exist")
	}

	var total int64
	ids := make([]string, 0, len(charges))
	for _, charge := range charges {
		if charge.ProviderID != userID {
			return nil, ErrUnauthorized
		}
		if charge.Status != domain.LeadChargeStatusPending {
			return nil, NewValidationError("invoice %d is %s, not payable", charge.ID, charge.Status)
		}
		total += charge.LeadAmountCents
		ids = append(ids, strconv.FormatInt(int64(charge.ID), 10))
	}
	if total < s.minChargeCents {
		return nil, NewValidationError("minimum charge is %d cents", s.minChargeCents)
	}

	return s.provider.CreateCheckoutSession(ctx, payments.CheckoutParams{
		AmountCents:   total,
		Description:   fmt.Sprintf("Payment for %d lead invoice(s)", len(charges)),
		CustomerEmail: user.Email,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			metaUserID:      strconv.FormatInt(int64(userID), 10),
			metaUserEmail:   user.Email,
			metaPaymentType: string(domain.PaymentTypeInvoice),
			metaInvoiceIDs:  strings.Join(ids, ","),
		},
	})
}

func (s *billingService) CreatePaymentIntent(ctx context.Context, userID int32, amountCents int64) (*payments.PaymentIntent, error) {
	if amountCents < s.minChargeCents {
		return nil, NewValidationError("minimum charge is %d cents", s.minChargeCents)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	credits := finance.Cents(amountCents).Credits()
	return s.provider.CreatePaymentIntent(ctx, amountCents, map[string]string{
		metaUserID:      strconv.FormatInt(int64(userID), 10),
		metaUserEmail:   user.Email,
		metaPaymentType: string(domain.PaymentTypeCredits),
		metaCredits:     strconv.FormatInt(int64(credits), 10),
	})
}

// VerifySession reconciles a checkout session against the provider and
// applies its effect at most once. Unpaid sessions mutate nothing; a
// session settled by an earlier call reports AlreadySettled instead of
// crediting twice.
func (s *billingService) VerifySession(ctx context.Context, userID int32, sessionID string) (*SettlementResult, error) {
	if sessionID == "" {
		return nil, NewValidationError("session id is required")
	}

	status, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment session: %w", err)
	}

	// The session must belong to the caller. Metadata is authoritative:
	// it was set server-side at creation.
	if owner := status.Metadata[metaUserID]; owner != strconv.FormatInt(int64(userID), 10) {
		return nil, ErrSessionOwnership
	}

	result := &SettlementResult{
		SessionID:      sessionID,
		ProviderStatus: status.Status,
		AmountCents:    status.AmountCents,
	}
	if !status.Paid {
		return result, nil
	}

	paymentType := domain.PaymentType(status.Metadata[metaPaymentType])
	session := &domain.ProcessedSession{
		SessionID:   sessionID,
		UserID:      userID,
		PaymentType: paymentType,
		AmountCents: status.AmountCents,
	}

	var invoiceIDs []int32
	switch paymentType {
	case domain.PaymentTypeCredits:
		credits, err := strconv.ParseInt(status.Metadata[metaCredits], 10, 32)
		if err != nil || credits <= 0 {
			return nil, NewValidationError("session %s has no valid credit amount", sessionID)
		}
		session.CreditsAdded = int32(credits)
	case domain.PaymentTypeInvoice:
		invoiceIDs, err = parseInvoiceIDs(status.Metadata[metaInvoiceIDs])
		if err != nil {
			return nil, NewValidationError("session %s has no valid invoice list", sessionID)
		}
	default:
		return nil, NewValidationError("session %s has unknown payment type %q", sessionID, paymentType)
	}

	applied, newBalance, err := s.settlementRepo.RecordSettlement(ctx, session, invoiceIDs, "stripe_checkout")
	if err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	result.Settled = true
	result.AlreadySettled = !applied
	result.PaymentType = paymentType
	result.NewBalance = newBalance
	result.InvoicesPaid = invoiceIDs
	if applied {
		result.CreditsAdded = session.CreditsAdded
		s.sendReceipt(ctx, status, paymentType)
	}
	return result, nil
}

func (s *billingService) CreateLeadCharge(ctx context.Context, callerID int32, charge *domain.LeadCharge) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	// Charges are raised against providers by back-office staff, never
	// by the providers' fellow members.
	if caller.Role != domain.UserRoleAdmin {
		return ErrUnauthorized
	}
	if charge.LeadAmountCents <= 0 {
		return NewValidationError("lead amount must be positive")
	}
	if charge.Description == "" {
		return NewValidationError("description is required")
	}
	if _, err := s.userRepo.GetByID(ctx, charge.ProviderID); err != nil {
		return err
	}
	charge.Status = domain.LeadChargeStatusPending
	return s.leadChargeRepo.Create(ctx, charge)
}

func (s *billingService) ListLeadCharges(ctx context.Context, providerID int32, status string, page, pageSize int32) ([]domain.LeadCharge, int32, error) {
	return s.leadChargeRepo.ListByProvider(ctx, providerID, domain.LeadChargeStatus(status), page, pageSize)
}

// sendReceipt is best-effort; a settled payment never fails on email.
func (s *billingService) sendReceipt(ctx context.Context, status *payments.SessionStatus, paymentType domain.PaymentType) {
	email := status.Metadata[metaUserEmail]
	if email == "" {
		return
	}
	description := "Credit purchase"
	if paymentType == domain.PaymentTypeInvoice {
		description = "Lead invoice payment"
	}
	if err := s.emailService.SendPaymentReceipt(ctx, email, status.AmountCents, description); err != nil {
		logger.ErrorContext(ctx, "failed to send payment receipt", "session_id", status.ID, "error", err)
	}
}

func parseInvoiceIDs(raw string) ([]int32, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty invoice list")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int32, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid invoice id %q", p)
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}
