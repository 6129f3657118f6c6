package repository

import (
	"context"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSession returns the session row for the given ID.
// Satisfies auth.SessionStore.
func (r *SessionRepository) GetSession(ctx context.Context, sid string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "sid = ?", sid).Error
}

// Touch extends a session's expiry
func (r *SessionRepository) Touch(ctx context.Context, sid string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("sid = ?", sid).
		Update("expires_at", expiresAt).Error
}

// DeleteExpired removes sessions past their expiry. Returns rows removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&domain.Session{})
	return result.RowsAffected, result.Error
}
