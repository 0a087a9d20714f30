package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// NotificationReader defines read operations for the notification log
type NotificationReader interface {
	// ListNotifications retrieves the notification log, newest first.
	ListNotifications(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Notification, error)

	// CountUnread returns the number of unread notifications.
	CountUnread(ctx context.Context) (int64, error)
}

// NotificationWriter defines write operations for the notification log
type NotificationWriter interface {
	// SaveNotification persists one rendered notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// UpdateNotificationStatus records the best-effort delivery outcome.
	UpdateNotificationStatus(ctx context.Context, notificationID string, status domain.NotificationStatus) error

	// MarkRead flags one notification as read.
	MarkRead(ctx context.Context, notificationID string) error

	// MarkAllRead flags every notification as read.
	MarkAllRead(ctx context.Context) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
