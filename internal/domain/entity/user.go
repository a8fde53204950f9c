package entity

import "time"

type User struct {
	ID                 string    `json:"id" firestore:"-"`
	Email              string    `json:"email" firestore:"email"`
	Username           string    `json:"username" firestore:"username"`
	FullName           string    `json:"full_name" firestore:"fullName"`
	Phone              string    `json:"phone" firestore:"phone"`
	Bio                string    `json:"bio" firestore:"bio"`
	AvatarURL          string    `json:"avatar_url" firestore:"avatarUrl"`
	Location           string    `json:"location" firestore:"location"`
	Role               string    `json:"role" firestore:"role"`
	Status             string    `json:"status" firestore:"status"`
	VerificationStatus string    `json:"verification_status" firestore:"verificationStatus"`
	LastSeen           time.Time `json:"last_seen" firestore:"lastSeen"`
	CreatedAt          time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt          time.Time `json:"updated_at" firestore:"updatedAt"`
}
