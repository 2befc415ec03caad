package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
	"github.com/stonecove-rowing/crewbot/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or PIN")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AuthService issues session tokens for athletes who present the right
// PIN. Attempts are rate limited per athlete name so a shared boathouse
// tablet can't be used to brute-force a 4-digit PIN.
type AuthService struct {
	db       bun.IDB
	athletes rosterdb.AthleteRepository
	tokens   jwt.Service
	tokenTTL time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewAuthService creates a new AuthService.
func NewAuthService(db bun.IDB, athletes rosterdb.AthleteRepository, tokens jwt.Service, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		db:       db,
		athletes: athletes,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the per-name attempt limiter: one attempt per two
// seconds with a small burst.
func (s *AuthService) limiter(name string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[name]
	if !ok {
		l = rate.NewLimiter(rate.Every(2*time.Second), 5)
		s.limiters[name] = l
	}
	return l
}

// LoginResult carries the signed token and the athlete it belongs to.
type LoginResult struct {
	Token   string            `json:"token"`
	Athlete *rosterdb.Athlete `json:"athlete"`
}

// Login validates a name/PIN pair and returns a session token. Failures
// are deliberately indistinguishable between unknown name and wrong PIN.
func (s *AuthService) Login(ctx context.Context, name, pin string) (*LoginResult, error) {
	if !s.limiter(name).Allow() {
		s.logger.WarnContext(ctx, "Login rate limited", slog.String("name", name))
		return nil, ErrTooManyAttempts
	}

	athlete, err := s.athletes.GetAthleteByName(ctx, s.db, name)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("AuthService.Login: %w", err)
	}
	if !athlete.Active || athlete.PINHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(athlete.PINHash), []byte(pin)); err != nil {
		s.logger.WarnContext(ctx, "Login failed", slog.String("name", name))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(athlete.ID.String(), athlete.Name, jwt.Role(athlete.Role), s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("AuthService.Login: %w", err)
	}

	s.logger.InfoContext(ctx, "Athlete logged in", slog.String("athlete_id", athlete.ID.String()))
	return &LoginResult{Token: token, Athlete: athlete}, nil
}
