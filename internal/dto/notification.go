package dto

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// ListNotificationsRequest filters the notification log.
type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unreadOnly"`
	Limit      int  `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int  `form:"offset,default=0" binding:"omitempty,min=0"`
}

type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Event          string    `json:"event"`
	Channel        string    `json:"channel"`
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Status         string    `json:"status"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unreadCount"`
}

func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Event:          string(n.Event),
		Channel:        string(n.Channel),
		Recipient:      n.Recipient,
		Subject:        n.Subject,
		Body:           n.Body,
		Status:         string(n.Status),
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}
