package service

import (
	"context"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/repository"
)

type dealService struct {
	dealRepo repository.DealRepository
}

func NewDealService(dealRepo repository.DealRepository) DealService {
	return &dealService{dealRepo: dealRepo}
}

func (s *dealService) CreateDeal(ctx context.Context, deal *domain.Deal) error {
	if deal.Title == "" {
		return NewValidationError("title is required")
	}
	if deal.PriceCents <= 0 {
		return NewValidationError("price must be positive")
	}
	switch deal.DealType {
	case domain.DealTypeSale, domain.DealTypeRent, domain.DealTypeAirbnb, domain.DealTypeService:
	default:
		return NewValidationError("unknown deal type %q", deal.DealType)
	}
	if deal.OwnerFinancingAvailable {
		if deal.InterestRatePercent < 0 {
			return NewValidationError("interest rate cannot be negative")
		}
		if deal.TermYears <= 0 {
			deal.TermYears = 1
		}
	}
	return s.dealRepo.Create(ctx, deal)
}

func (s *dealService) GetDeal(ctx context.Context, id int32) (*domain.Deal, error) {
	return s.dealRepo.GetByID(ctx, id)
}

func (s *dealService) UpdateDeal(ctx context.Context, userID int32, deal *domain.Deal) error {
	existing, err := s.dealRepo.GetByID(ctx, deal.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return ErrUnauthorized
	}
	deal.OwnerID = existing.OwnerID
	return s.dealRepo.Update(ctx, deal)
}

func (s *dealService) DeleteDeal(ctx context.Context, userID, dealID int32) error {
	existing, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return ErrUnauthorized
	}
	return s.dealRepo.Delete(ctx, dealID)
}

func (s *dealService) ListMyDeals(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Deal, int32, error) {
	return s.dealRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *dealService) SearchDeals(ctx context.Context, search DealSearch, page, pageSize int32) ([]domain.Deal, int32, error) {
	filter := repository.DealFilter{
		Query:         search.Query,
		DealType:      domain.DealType(search.DealType),
		City:          search.City,
		MinPriceCents: search.MinPriceCents,
		MaxPriceCents: search.MaxPriceCents,
		MinBedrooms:   search.MinBedrooms,
		FinancingOnly: search.FinancingOnly,
	}
	return s.dealRepo.Search(ctx, filter, page, pageSize)
}

// FinancingBreakdown computes the monthly cost of the deal under its
// owner-financing terms. All stored cents convert to dollars once, here,
// so the calculator stays unit-free.
func (s *dealService) FinancingBreakdown(ctx context.Context, dealID int32, downPaymentDollars *float64) (*finance.MonthlyBreakdown, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.OwnerFinancingAvailable {
		return nil, NewValidationError("deal %d does not offer owner financing", dealID)
	}

	terms := FinancingTermsFromDeal(deal)
	if downPaymentDollars != nil {
		terms.DownPaymentAmount = *downPaymentDollars
		terms.DownPaymentPercent = 0
	}

	breakdown := finance.MonthlyPayment(terms)
	return &breakdown, nil
}

// FinancingTermsFromDeal maps a listing's stored financing fields onto
// calculator terms, converting cents to dollars.
func FinancingTermsFromDeal(deal *domain.Deal) finance.FinancingTerms {
	others := make([]finance.MonthlyExpense, 0, len(deal.OtherMonthlyExpenses))
	for _, e := range deal.OtherMonthlyExpenses {
		others = append(others, finance.MonthlyExpense{
			Name:   e.Name,
			Amount: float64(finance.Cents(e.AmountCents).Dollars()),
		})
	}
	return finance.FinancingTerms{
		Price:              float64(finance.Cents(deal.PriceCents).Dollars()),
		DownPaymentAmount:  float64(finance.Cents(deal.MinDownPaymentCents).Dollars()),
		DownPaymentPercent: deal.MinDownPaymentPercent,
		AnnualRatePercent:  deal.InterestRatePercent,
		TermYears:          int(deal.TermYears),
		PropertyTaxAnnual:  float64(finance.Cents(deal.PropertyTaxAnnualCents).Dollars()),
		InsuranceAnnual:    float64(finance.Cents(deal.InsuranceAnnualCents).Dollars()),
		HOAMonthly:         float64(finance.Cents(deal.HOAMonthlyCents).Dollars()),
		OtherExpenses:      others,
	}
}
