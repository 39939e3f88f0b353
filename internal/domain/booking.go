package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type Booking struct {
	ID         int32         `json:"id"`
	DealID     int32         `json:"deal_id"`
	GuestID    int32         `json:"guest_id"`
	OwnerID    int32         `json:"owner_id"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	TotalCents int64         `json:"total_cents"`
	Status     BookingStatus `json:"status"`
	Note       string        `json:"note,omitempty"`
	CreatedOn  time.Time     `json:"created_on"`
	UpdatedOn  time.Time     `json:"updated_on"`
}
