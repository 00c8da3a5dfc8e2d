package kafka

import "time"

// ItemSoldEvent is published when a listing flips to sold
type ItemSoldEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ItemID    uint      `json:"item_id"`
	SellerID  uint      `json:"seller_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewCreatedEvent is published when a user reviews another user
type ReviewCreatedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ReviewID   uint      `json:"review_id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeItemSold      = "item.sold"
	EventTypeReviewCreated = "review.created"
)

// Kafka topics
const (
	TopicItemSold      = "item-sold"
	TopicReviewCreated = "review-created"
)
