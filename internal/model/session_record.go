package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRecord is the server-side trail of an issued console session. Only a
// hash of the token is stored, never the token itself.
type SessionRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserCode  string     `gorm:"index" json:"user_code"`
	TokenHash string     `gorm:"uniqueIndex;size:64" json:"-"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (s *SessionRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Live reports whether the record still authorizes requests at the given time.
func (s *SessionRecord) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
