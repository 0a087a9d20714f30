package services

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// NotificationReaderSvc defines read operations for the notification log
type NotificationReaderSvc interface {
	// ListNotifications retrieves notifications newest first, optionally
	// only unread ones, together with the unread count.
	ListNotifications(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)
}

// NotificationWriterSvc defines write operations for the notification log
type NotificationWriterSvc interface {
	// NotifyEvent renders and records a notification for a business event
	// and hands it to the dispatcher. Best-effort: failures are logged and
	// recorded, never returned to the triggering operation.
	NotifyEvent(ctx context.Context, event domain.NotificationEvent, channel domain.NotificationChannel, recipient string, params map[string]string)

	// MarkNotificationRead marks one notification as read.
	MarkNotificationRead(ctx context.Context, notificationID string) error

	// MarkAllNotificationsRead marks every notification as read.
	MarkAllNotificationsRead(ctx context.Context) error
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotificationReaderSvc
	NotificationWriterSvc
}

// NotificationDispatcher hands rendered notifications to an outbound
// delivery channel. Implementations must not block the caller's request
// path beyond enqueueing.
type NotificationDispatcher interface {
	// Dispatch enqueues one rendered notification for delivery.
	Dispatch(ctx context.Context, n domain.Notification) error

	// Close flushes and releases the underlying transport.
	Close() error
}
