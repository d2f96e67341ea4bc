package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage archives a contact form submission.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message;not null"`
	EmailSent bool      `gorm:"column:email_sent;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
