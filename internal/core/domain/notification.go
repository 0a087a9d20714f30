package domain

import "time"

// NotificationChannel is the delivery channel for an outbound message.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

// NotificationStatus tracks best-effort delivery. Dispatch failures are
// recorded here, never surfaced to the operation that triggered them.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
)

// NotificationEvent names the business event a notification announces.
type NotificationEvent string

const (
	EventTransactionCreated   NotificationEvent = "TRANSACTION_CREATED"
	EventTransactionValidated NotificationEvent = "TRANSACTION_VALIDATED"
	EventTransactionCancelled NotificationEvent = "TRANSACTION_CANCELLED"
	EventTransactionWithdrawn NotificationEvent = "TRANSACTION_WITHDRAWN"
	EventClientCreated        NotificationEvent = "CLIENT_CREATED"
	EventUserCreated          NotificationEvent = "USER_CREATED"
)

// Notification is one rendered message in the back-office notification log.
type Notification struct {
	NotificationID string              `json:"notificationID"` // Primary Key (UUID)
	Event          NotificationEvent   `json:"event"`
	Channel        NotificationChannel `json:"channel"`
	Recipient      string              `json:"recipient"` // email address or phone number
	Subject        string              `json:"subject"`
	Body           string              `json:"body"`
	Status         NotificationStatus  `json:"status"`
	Read           bool                `json:"read"`
	CreatedAt      time.Time           `json:"createdAt"`
}
