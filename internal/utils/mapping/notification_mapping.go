package mapping

import (
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		Event:          string(d.Event),
		Channel:        string(d.Channel),
		Recipient:      d.Recipient,
		Subject:        d.Subject,
		Body:           d.Body,
		Status:         string(d.Status),
		Read:           d.Read,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		Event:          domain.NotificationEvent(m.Event),
		Channel:        domain.NotificationChannel(m.Channel),
		Recipient:      m.Recipient,
		Subject:        m.Subject,
		Body:           m.Body,
		Status:         domain.NotificationStatus(m.Status),
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainNotificationSlice converts a slice of model Notifications to a slice of domain Notifications
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	ds := make([]domain.Notification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
