package entity

import "time"

const (
	VerificationTypeBasic    = "basic"
	VerificationTypeBusiness = "business"

	VerificationStatusNone     = "none"
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

type VerificationDocument struct {
	ID       string `json:"id" firestore:"id"`
	Kind     string `json:"kind" firestore:"kind"`
	Filename string `json:"filename" firestore:"filename"`
	URL      string `json:"url" firestore:"url"`
	Status   string `json:"status" firestore:"status"`
}

type Verification struct {
	ID         string                 `json:"id" firestore:"-"`
	UserID     string                 `json:"user_id" firestore:"userId"`
	Type       string                 `json:"type" firestore:"type"`
	Status     string                 `json:"status" firestore:"status"`
	Documents  []VerificationDocument `json:"documents" firestore:"documents"`
	Notes      string                 `json:"notes,omitempty" firestore:"notes"`
	ReviewedBy string                 `json:"reviewed_by,omitempty" firestore:"reviewedBy"`
	ReviewedAt *time.Time             `json:"reviewed_at,omitempty" firestore:"reviewedAt"`
	CreatedAt  time.Time              `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time              `json:"updated_at" firestore:"updatedAt"`
}
