package entity

import "time"

// Listing lifecycle statuses. A listing is created as pending while its
// images upload, then flipped to active. Deletes are soft.
const (
	ListingStatusPending = "pending"
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusDeleted = "deleted"
)

type ListingImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	ObjectName   string `json:"-" firestore:"objectName"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Listing struct {
	ID          string                 `json:"id" firestore:"-"`
	OwnerID     string                 `json:"owner_id" firestore:"ownerId"`
	Category    string                 `json:"category" firestore:"category"`
	Title       string                 `json:"title" firestore:"title"`
	Description string                 `json:"description" firestore:"description"`
	Price       float64                `json:"price" firestore:"price"`
	Currency    string                 `json:"currency" firestore:"currency"`
	Location    string                 `json:"location" firestore:"location"`
	Specs       map[string]interface{} `json:"specs,omitempty" firestore:"specs"`
	Images      []ListingImage         `json:"images" firestore:"images"`
	Status      string                 `json:"status" firestore:"status"`
	Views       int64                  `json:"views" firestore:"views"`
	CreatedAt   time.Time              `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time              `json:"updated_at" firestore:"updatedAt"`
	DeletedAt   *time.Time             `json:"deleted_at,omitempty" firestore:"deletedAt"`
}

// CoverImage returns the image shown on feed cards. The first photo a
// seller attaches is the cover.
func (l *Listing) CoverImage() string {
	for _, img := range l.Images {
		if img.DisplayOrder == 0 {
			return img.URL
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0].URL
	}
	return ""
}

func (l *Listing) IsOwnedBy(userID string) bool {
	return l.OwnerID == userID
}
