package repository

import (
	"errors"
	"sync"
	"time"

	"go-shakti-admin/internal/model"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session record not found")

// memorySessionRepo backs deployments without a session database and tests.
type memorySessionRepo struct {
	mu   sync.RWMutex
	recs map[string]*model.SessionRecord
}

func NewMemorySessionRepo() SessionRepository {
	return &memorySessionRepo{recs: make(map[string]*model.SessionRecord)}
}

func (r *memorySessionRepo) Create(rec *model.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.recs[rec.TokenHash] = &cp
	return nil
}

func (r *memorySessionRepo) FindByTokenHash(hash string) (*model.SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[hash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *memorySessionRepo) Revoke(hash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.recs[hash]; ok && rec.RevokedAt == nil {
		t := at
		rec.RevokedAt = &t
	}
	return nil
}

func (r *memorySessionRepo) RevokeAllForUser(userCode string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.UserCode == userCode && rec.RevokedAt == nil {
			t := at
			rec.RevokedAt = &t
		}
	}
	return nil
}

func (r *memorySessionRepo) PurgeExpired(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for hash, rec := range r.recs {
		if rec.ExpiresAt.Before(before) {
			delete(r.recs, hash)
			n++
		}
	}
	return n, nil
}
