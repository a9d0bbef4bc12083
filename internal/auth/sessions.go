package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNoSession is returned for unknown or expired tokens.
var ErrNoSession = errors.New("no active session")

// SessionStore maps opaque tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Lookup(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.NewString()
}

// DBSessions keeps sessions in the sessions table.
type DBSessions struct {
	DB  *gorm.DB
	TTL time.Duration
	now func() time.Time
}

func NewDBSessions(db *gorm.DB, ttl time.Duration) *DBSessions {
	return &DBSessions{DB: db, TTL: ttl, now: time.Now}
}

func (s *DBSessions) Create(ctx context.Context, userID uint) (string, error) {
	sess := models.Session{
		Token:     newToken(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.TTL),
	}
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.Token, nil
}

func (s *DBSessions) Lookup(ctx context.Context, token string) (uint, error) {
	var sess models.Session
	err := s.DB.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, s.now()).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	return sess.UserID, nil
}

func (s *DBSessions) Delete(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

// RedisSessions keeps sessions as expiring keys.
type RedisSessions struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisSessions(addr string, ttl time.Duration) *RedisSessions {
	return &RedisSessions{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
		Prefix: "session:",
	}
}

func (s *RedisSessions) Create(ctx context.Context, userID uint) (string, error) {
	token := newToken()
	if err := s.Client.Set(ctx, s.Prefix+token, userID, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, token string) (uint, error) {
	v, err := s.Client.Get(ctx, s.Prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", token, err)
	}
	return uint(id), nil
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, s.Prefix+token).Err()
}

// MemorySessions is a process-local store for tests and single-node
// development.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]uint)}
}

func (s *MemorySessions) Create(_ context.Context, userID uint) (string, error) {
	token := newToken()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessions) Lookup(_ context.Context, token string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	if !ok {
		return 0, ErrNoSession
	}
	return id, nil
}

func (s *MemorySessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
