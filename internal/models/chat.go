package models

import "time"

// Chat message senders.
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// ChatMessage is one line of the support conversation between a user and
// the admin side of the app.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id"`
	Sender    string    `json:"sender" gorm:"type:varchar(20)"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatParticipant is the aggregated admin view of one conversation: the
// user, their latest message, and how many of their messages are unread.
type ChatParticipant struct {
	UserID      uint      `json:"user_id"`
	UserName    string    `json:"user_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	UnreadCount int       `json:"unread_count"`
}
