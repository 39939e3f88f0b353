package domain

import "time"

type Review struct {
	ID         int32     `json:"id"`
	DealID     int32     `json:"deal_id"`
	BookingID  int32     `json:"booking_id"`
	ReviewerID int32     `json:"reviewer_id"`
	Rating     int32     `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
}
