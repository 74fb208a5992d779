package message

import "time"

// Messages are immutable once stored; there is no edit or delete surface.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type SendRequest struct {
	Text        string `json:"text" binding:"required,min=1,max=2000"`
	RecipientID string `json:"recipientId" binding:"required,uuid"`
}
