package domain

import "time"

// Insight is an editorial market post; its video generation is not metered.
type Insight struct {
	ID        int32     `json:"id"`
	AuthorID  int32     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Photos    []string  `json:"photos,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	VideoKey  string    `json:"video_key,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
