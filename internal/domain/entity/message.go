package entity

import "time"

const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeLocation = "location"
)

// Message carries ClientKey, the sender-generated idempotency key. A
// client that appended the message optimistically uses it to recognize
// the server echo; retries with the same key never store a duplicate.
type Message struct {
	ID            string    `json:"id" firestore:"-"`
	ChatID        string    `json:"chat_id" firestore:"chatId"`
	SenderID      string    `json:"sender_id" firestore:"senderId"`
	RecipientID   string    `json:"recipient_id" firestore:"recipientId"`
	Type          string    `json:"type" firestore:"type"`
	Content       string    `json:"content" firestore:"content"`
	AttachmentURL string    `json:"attachment_url,omitempty" firestore:"attachmentUrl"`
	ClientKey     string    `json:"client_key,omitempty" firestore:"clientKey"`
	ReadBy        []string  `json:"read_by" firestore:"readBy"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

func (m *Message) IsReadBy(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
