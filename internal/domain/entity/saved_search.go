package entity

import "time"

type SavedSearch struct {
	ID        string                 `json:"id" firestore:"-"`
	UserID    string                 `json:"user_id" firestore:"userId"`
	Query     string                 `json:"query" firestore:"query"`
	Category  string                 `json:"category,omitempty" firestore:"category"`
	Filters   map[string]interface{} `json:"filters,omitempty" firestore:"filters"`
	LastRunAt time.Time              `json:"last_run_at" firestore:"lastRunAt"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time              `json:"updated_at" firestore:"updatedAt"`
}
