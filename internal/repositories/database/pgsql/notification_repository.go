package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/models"
	"github.com/transferpro/transferpro_backend/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for the notification log.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, event, channel, recipient, subject, body, status, read, created_at`

// SaveNotification persists one rendered notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.Event,
		m.Channel,
		m.Recipient,
		m.Subject,
		m.Body,
		m.Status,
		m.Read,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", m.NotificationID, err)
	}
	return nil
}

// UpdateNotificationStatus records the best-effort delivery outcome.
func (r *PgxNotificationRepository) UpdateNotificationStatus(ctx context.Context, notificationID string, status domain.NotificationStatus) error {
	query := `UPDATE notifications SET status = $2 WHERE notification_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, notificationID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status of notification %s: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkRead flags one notification as read.
func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE notification_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllRead flags every notification as read.
func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE read = FALSE;`); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// ListNotifications retrieves the notification log, newest first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Notification, error) {
		var m models.Notification
		err := row.Scan(
			&m.NotificationID,
			&m.Event,
			&m.Channel,
			&m.Recipient,
			&m.Subject,
			&m.Body,
			&m.Status,
			&m.Read,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}

	return mapping.ToDomainNotificationSlice(ms), nil
}

// CountUnread returns the number of unread notifications.
func (r *PgxNotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE read = FALSE;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
