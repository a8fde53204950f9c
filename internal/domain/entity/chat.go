package entity

import "time"

type Chat struct {
	ID            string         `json:"id" firestore:"-"`
	ListingID     string         `json:"listing_id" firestore:"listingId"`
	BuyerID       string         `json:"buyer_id" firestore:"buyerId"`
	SellerID      string         `json:"seller_id" firestore:"sellerId"`
	Participants  []string       `json:"participants" firestore:"participants"`
	LastMessage   string         `json:"last_message" firestore:"lastMessage"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCounts  map[string]int `json:"unread_counts" firestore:"unreadCounts"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterpart of userID in a two-party chat.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
