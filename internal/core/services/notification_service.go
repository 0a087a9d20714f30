package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
)

// NotificationService renders, records and dispatches outbound messages.
// Everything here is best-effort: a notification must never fail the
// business operation that produced it.
type NotificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	dispatcher       portssvc.NotificationDispatcher
}

// NewNotificationService creates a new NotificationService. dispatcher may
// be nil when no outbound transport is configured; the log row is still
// written.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, dispatcher portssvc.NotificationDispatcher) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, dispatcher: dispatcher}
}

// renderMessage builds the subject and body for a business event.
func renderMessage(event domain.NotificationEvent, params map[string]string) (subject, body string) {
	name := params["clientName"]
	numero := params["numero"]

	switch event {
	case domain.EventTransactionCreated:
		subject = fmt.Sprintf("Transfer %s registered", numero)
		body = fmt.Sprintf("Hello %s, your transaction %s for %s has been registered and is awaiting validation.",
			name, numero, params["amount"])
	case domain.EventTransactionValidated:
		subject = fmt.Sprintf("Transfer %s validated", numero)
		body = fmt.Sprintf("Hello %s, your transaction %s has been validated. Net amount: %s.",
			name, numero, params["netAmount"])
		if code := params["withdrawalCode"]; code != "" {
			body += fmt.Sprintf(" Pickup code: %s.", code)
		}
	case domain.EventTransactionCancelled:
		subject = fmt.Sprintf("Transfer %s cancelled", numero)
		body = fmt.Sprintf("Hello %s, your transaction %s has been cancelled.", name, numero)
	case domain.EventTransactionWithdrawn:
		subject = fmt.Sprintf("Transfer %s paid out", numero)
		body = fmt.Sprintf("Hello %s, the funds of transaction %s have been paid out to the beneficiary.", name, numero)
	case domain.EventClientCreated:
		subject = "Welcome to TransferPro"
		body = fmt.Sprintf("Hello %s, your client account has been created.", name)
	case domain.EventUserCreated:
		subject = "Your TransferPro operator account"
		body = fmt.Sprintf("Hello %s, your operator account has been created.", name)
	default:
		subject = string(event)
		body = fmt.Sprintf("Hello %s, there is an update on your account.", name)
	}
	return subject, body
}

// NotifyEvent renders a notification, persists the log row and hands the
// message to the dispatcher on a detached context so an ending request
// cannot cancel delivery mid-flight.
func (s *NotificationService) NotifyEvent(ctx context.Context, event domain.NotificationEvent, channel domain.NotificationChannel, recipient string, params map[string]string) {
	subject, body := renderMessage(event, params)
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Event:          event,
		Channel:        channel,
		Recipient:      recipient,
		Subject:        subject,
		Body:           body,
		Status:         domain.NotificationPending,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "failed to record notification", "event", string(event))
		return
	}

	if s.dispatcher == nil {
		return
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		status := domain.NotificationSent
		if err := s.dispatcher.Dispatch(detached, notification); err != nil {
			s.LogError(detached, err, "notification dispatch failed",
				"notification_id", notification.NotificationID, "event", string(event))
			status = domain.NotificationFailed
		}
		if err := s.notificationRepo.UpdateNotificationStatus(detached, notification.NotificationID, status); err != nil {
			s.LogError(detached, err, "failed to record notification status",
				"notification_id", notification.NotificationID)
		}
	}()
}

// ListNotifications retrieves notifications newest first plus the unread count.
func (s *NotificationService) ListNotifications(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications, err := s.notificationRepo.ListNotifications(ctx, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, int(unread), nil
}

// MarkNotificationRead marks one notification as read.
func (s *NotificationService) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func (s *NotificationService) MarkAllNotificationsRead(ctx context.Context) error {
	if err := s.notificationRepo.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
