package repository

import (
	"time"

	"go-shakti-admin/internal/model"

	"gorm.io/gorm"
)

// SessionRepository tracks issued sessions so the guard can reject revoked
// tokens and the revoke utility can purge stale rows.
type SessionRepository interface {
	Create(rec *model.SessionRecord) error
	FindByTokenHash(hash string) (*model.SessionRecord, error)
	Revoke(hash string, at time.Time) error
	RevokeAllForUser(userCode string, at time.Time) error
	PurgeExpired(before time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(rec *model.SessionRecord) error {
	return r.db.Create(rec).Error
}

func (r *sessionRepo) FindByTokenHash(hash string) (*model.SessionRecord, error) {
	var rec model.SessionRecord
	if err := r.db.Where("token_hash = ?", hash).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sessionRepo) Revoke(hash string, at time.Time) error {
	return r.db.Model(&model.SessionRecord{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", at).Error
}

func (r *sessionRepo) RevokeAllForUser(userCode string, at time.Time) error {
	return r.db.Model(&model.SessionRecord{}).
		Where("user_code = ? AND revoked_at IS NULL", userCode).
		Update("revoked_at", at).Error
}

func (r *sessionRepo) PurgeExpired(before time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", before).Delete(&model.SessionRecord{})
	return res.RowsAffected, res.Error
}
