package entity

import "time"

type FileMetadata struct {
	ID         string    `json:"id" firestore:"-"`
	UserID     string    `json:"user_id" firestore:"userId"`
	Filename   string    `json:"filename" firestore:"filename"`
	ObjectName string    `json:"object_name" firestore:"objectName"`
	URL        string    `json:"url" firestore:"url"`
	FileType   string    `json:"file_type" firestore:"fileType"`
	Size       int64     `json:"size" firestore:"size"`
	EntityType string    `json:"entity_type,omitempty" firestore:"entityType"`
	EntityID   string    `json:"entity_id,omitempty" firestore:"entityId"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
