package domain

import "time"

type DealType string

const (
	DealTypeSale    DealType = "SALE"
	DealTypeRent    DealType = "RENT"
	DealTypeAirbnb  DealType = "AIRBNB"
	DealTypeService DealType = "SERVICE"
)

type DealStatus string

const (
	DealStatusActive   DealStatus = "ACTIVE"
	DealStatusSold     DealStatus = "SOLD"
	DealStatusInactive DealStatus = "INACTIVE"
)

// ExpenseItem is a named recurring monthly expense attached to a listing
type ExpenseItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

type Deal struct {
	ID          int32      `json:"id"`
	OwnerID     int32      `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DealType    DealType   `json:"deal_type"`
	Status      DealStatus `json:"status"`
	PriceCents  int64      `json:"price_cents"`

	// Property details
	Bedrooms      int32   `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFootage int32   `json:"square_footage"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`

	// Owner financing terms
	OwnerFinancingAvailable  bool    `json:"owner_financing_available"`
	MinDownPaymentPercent    float64 `json:"min_down_payment_percent"`
	MinDownPaymentCents      int64   `json:"min_down_payment_cents"`
	InterestRatePercent      float64 `json:"interest_rate_percent"` // annual
	TermYears                int32   `json:"term_years"`
	PropertyTaxAnnualCents   int64   `json:"property_tax_annual_cents"`
	InsuranceAnnualCents     int64   `json:"insurance_annual_cents"`
	HOAMonthlyCents          int64   `json:"hoa_monthly_cents"`
	OtherMonthlyExpenses     []ExpenseItem `json:"other_monthly_expenses,omitempty"`

	// Generated listing video
	Photos   []string `json:"photos,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
	VideoKey string   `json:"video_key,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
