package entity

import "time"

// SavedItem is a user-to-listing reference used for both favorites and
// bookmarks. The two features share shape and semantics and differ only
// in which collection the item lives in.
type SavedItem struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// SavedItemWithListing embeds the resolved listing for list views.
type SavedItemWithListing struct {
	SavedItem
	Listing *Listing `json:"listing,omitempty" firestore:"-"`
}
