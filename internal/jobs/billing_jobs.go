package jobs

import (
	"context"
	"time"

	"porchlight-backend/internal/logger"
)

// reminderAfterDays is how long a lead invoice sits unpaid before the
// provider gets an email nudge.
const reminderAfterDays = 7

// MarkDisputedCharges flips lead charges that stayed PENDING past the
// configured dispute window into DISPUTED so an operator reviews them.
func (jr *JobRunner) MarkDisputedCharges() {
	jr.runWithRecovery("MarkDisputedCharges", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Billing.DisputeAfterDays)

		marked, err := jr.store.LeadChargeRepository.MarkDisputedOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to mark disputed charges", "error", err)
			return
		}
		logger.Info("Marked overdue lead charges as disputed", "count", marked, "cutoff", cutoff.Format("2006-01-02"))
	})
}

// SendChargeReminders emails providers with lead invoices that have been
// outstanding for a week or more.
func (jr *JobRunner) SendChargeReminders() {
	jr.runWithRecovery("SendChargeReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -reminderAfterDays)

		charges, err := jr.store.LeadChargeRepository.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list outstanding lead charges", "error", err)
			return
		}

		sent := 0
		for _, charge := range charges {
			provider, err := jr.store.UserRepository.GetByID(ctx, charge.ProviderID)
			if err != nil {
				logger.Error("Failed to load provider for reminder", "charge_id", charge.ID, "error", err)
				continue
			}

			days := int(time.Since(charge.CreatedOn).Hours() / 24)
			if err := jr.services.Email.SendLeadChargeReminder(ctx, provider.Email, charge.LeadAmountCents, days); err != nil {
				logger.Error("Failed to send charge reminder", "charge_id", charge.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent lead charge reminders", "outstanding", len(charges), "sent", sent)
	})
}

// PurgeSettledSessions deletes processed payment sessions older than the
// retention window. The audit trail survives in credit_transactions and
// on the lead charges themselves.
func (jr *JobRunner) PurgeSettledSessions() {
	jr.runWithRecovery("PurgeSettledSessions", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Billing.SessionKeepDays)

		purged, err := jr.store.SettlementRepository.PurgeProcessedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge settled sessions", "error", err)
			return
		}
		logger.Info("Purged old settled sessions", "count", purged, "cutoff", cutoff.Format("2006-01-02"))
	})
}
