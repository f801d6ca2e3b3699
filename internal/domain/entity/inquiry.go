package entity

import "time"

// ContactInquiry represents a message submitted through the public contact
// form. It is not persisted; it is forwarded to the notification sender.
type ContactInquiry struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	CreatedAt time.Time
}
