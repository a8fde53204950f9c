package entity

import "time"

const (
	NotificationTypeMessage      = "new_message"
	NotificationTypeListing      = "listing_published"
	NotificationTypeSavedSearch  = "saved_search_match"
	NotificationTypeVerification = "verification_update"
)

type Notification struct {
	ID        string                 `json:"id" firestore:"-"`
	UserID    string                 `json:"user_id" firestore:"userId"`
	Type      string                 `json:"type" firestore:"type"`
	Title     string                 `json:"title" firestore:"title"`
	Body      string                 `json:"body" firestore:"body"`
	Data      map[string]interface{} `json:"data,omitempty" firestore:"data"`
	Read      bool                   `json:"read" firestore:"read"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
}
