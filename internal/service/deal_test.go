package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

func financedDeal() *domain.Deal {
	return &domain.Deal{
		ID:                      3,
		OwnerID:                 2,
		Title:                   "Craftsman with workshop",
		DealType:                domain.DealTypeSale,
		Status:                  domain.DealStatusActive,
		PriceCents:              45000000, // $450,000
		OwnerFinancingAvailable: true,
		MinDownPaymentPercent:   20,
		InterestRatePercent:     6.5,
		TermYears:               30,
		PropertyTaxAnnualCents:  480000,
		InsuranceAnnualCents:    240000,
		HOAMonthlyCents:         10000,
		OtherMonthlyExpenses: []domain.ExpenseItem{
			{Name: "lawn care", AmountCents: 8000},
		},
	}
}

func TestDealService_FinancingBreakdown(t *testing.T) {
	ctx := context.Background()

	t.Run("UsesListingTerms", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		dealRepo.On("GetByID", ctx, int32(3)).Return(financedDeal(), nil).Once()

		got, err := svc.FinancingBreakdown(ctx, 3, nil)
		assert.NoError(t, err)
		assert.Equal(t, 90000.0, got.DownPayment)
		assert.Equal(t, 360000.0, got.Principal)
		assert.InDelta(t, 2275.44, got.MonthlyPI, 0.5)
		assert.Equal(t, 400.0, got.MonthlyTax)
		assert.Equal(t, 200.0, got.MonthlyInsurance)
		assert.Equal(t, 100.0, got.MonthlyHOA)
		assert.Equal(t, 80.0, got.OtherExpensesTotal)
	})

	t.Run("DownPaymentOverride", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		dealRepo.On("GetByID", ctx, int32(3)).Return(financedDeal(), nil).Once()

		override := 150000.0
		got, err := svc.FinancingBreakdown(ctx, 3, &override)
		assert.NoError(t, err)
		assert.Equal(t, 150000.0, got.DownPayment)
		assert.Equal(t, 300000.0, got.Principal)
	})

	t.Run("RejectsUnfinancedListing", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		plain := financedDeal()
		plain.OwnerFinancingAvailable = false
		dealRepo.On("GetByID", ctx, int32(3)).Return(plain, nil).Once()

		_, err := svc.FinancingBreakdown(ctx, 3, nil)
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDealService_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateRequiresOwner", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		dealRepo.On("GetByID", ctx, int32(3)).Return(financedDeal(), nil).Once()

		err := svc.UpdateDeal(ctx, 99, &domain.Deal{ID: 3, Title: "New title", PriceCents: 1})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("DeleteRequiresOwner", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		dealRepo.On("GetByID", ctx, int32(3)).Return(financedDeal(), nil).Once()

		err := svc.DeleteDeal(ctx, 99, 3)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestDealService_CreateDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsZeroPrice", func(t *testing.T) {
		svc := service.NewDealService(new(MockDealRepo))

		err := svc.CreateDeal(ctx, &domain.Deal{Title: "Free house", DealType: domain.DealTypeSale})
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("DefaultsFinancingTerm", func(t *testing.T) {
		dealRepo := new(MockDealRepo)
		svc := service.NewDealService(dealRepo)

		deal := &domain.Deal{
			Title:                   "Cabin",
			DealType:                domain.DealTypeSale,
			PriceCents:              100000,
			OwnerFinancingAvailable: true,
		}
		dealRepo.On("Create", ctx, deal).Return(nil).Once()

		err := svc.CreateDeal(ctx, deal)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), deal.TermYears)
	})
}
