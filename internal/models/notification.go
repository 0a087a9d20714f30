package models

import "time"

// Notification represents one rendered entry of the notification log.
type Notification struct {
	NotificationID string    `json:"notificationID"` // Primary Key (UUID)
	Event          string    `json:"event"`
	Channel        string    `json:"channel"` // EMAIL or SMS
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Status         string    `json:"status"` // PENDING, SENT or FAILED
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
