package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/logger"
)

type emailService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendOfferReceivedNotification(ctx context.Context, ownerEmail, buyerName, dealTitle string) error {
	subject := fmt.Sprintf("New offer on %s", dealTitle)
	body := fmt.Sprintf("%s made an offer on your listing %q. Sign in to review it.", buyerName, dealTitle)
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *emailService) SendOfferDecisionNotification(ctx context.Context, buyerEmail, dealTitle, decision string) error {
	subject := fmt.Sprintf("Your offer on %s was %s", dealTitle, decision)
	body := fmt.Sprintf("The owner has %s your offer on %q.", decision, dealTitle)
	return s.send(ctx, buyerEmail, subject, body)
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, guestName, dealTitle string, start, end time.Time) error {
	subject := fmt.Sprintf("New booking request for %s", dealTitle)
	body := fmt.Sprintf("%s requested to book %q from %s to %s.",
		guestName, dealTitle, start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *emailService) SendBookingDecisionNotification(ctx context.Context, guestEmail, dealTitle, decision string) error {
	subject := fmt.Sprintf("Your booking for %s was %s", dealTitle, decision)
	body := fmt.Sprintf("Your booking for %q has been %s.", dealTitle, decision)
	return s.send(ctx, guestEmail, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email string, amountCents int64, description string) error {
	subject := "Your Porchlight payment receipt"
	body := fmt.Sprintf("We received your payment of $%.2f for: %s. Thank you!",
		float64(finance.Cents(amountCents).Dollars()), description)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendLeadChargeReminder(ctx context.Context, providerEmail string, amountCents int64, daysOutstanding int) error {
	subject := "Outstanding lead invoice"
	body := fmt.Sprintf("You have a lead invoice of $%.2f outstanding for %d days. Please sign in to pay it.",
		float64(finance.Cents(amountCents).Dollars()), daysOutstanding)
	return s.send(ctx, providerEmail, subject, body)
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<p>%s</p>", body),
	)

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "subject", subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
