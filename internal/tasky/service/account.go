package service

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/domain"
	"github.com/taskyhq/tasky/internal/tasky/store"
	"github.com/taskyhq/tasky/pkg/cryptox"
	"github.com/taskyhq/tasky/pkg/idx"
	"github.com/taskyhq/tasky/pkg/jwtx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

var (
	ErrMissingSignupFields = errors.New("name, email and password are required")
	ErrMissingLoginFields  = errors.New("email and password are required")
	ErrEmailTaken          = errors.New("an account with that email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable to avoid account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService owns signup and login, password hashing and verification,
// and identity token issuance.
type AccountService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
	HashCost int

	// hashSlots bounds concurrent bcrypt work so a burst of signups cannot
	// starve unrelated request handling.
	hashSlots chan struct{}
}

func NewAccountService(st store.Store, signer jwtx.Signer, issuer string, tokenTTL time.Duration, hashCost int) *AccountService {
	slots := runtime.NumCPU()
	if slots < 2 {
		slots = 2
	}
	return &AccountService{
		Store:     st,
		Signer:    signer,
		Issuer:    issuer,
		TokenTTL:  tokenTTL,
		HashCost:  hashCost,
		hashSlots: make(chan struct{}, slots),
	}
}

// Signup registers a new account and returns a fresh token plus the public
// projection of the created user. The plaintext password is hashed on the
// spot and never stored or logged.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (string, domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", domain.PublicUser{}, ErrMissingSignupFields
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return "", domain.PublicUser{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", domain.PublicUser{}, err
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		XP:           0,
		Streak:       1,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent signup for the same email.
			return "", domain.PublicUser{}, ErrEmailTaken
		}
		return "", domain.PublicUser{}, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	log.Info("account created", "user_id", user.ID)
	return token, user.Public(), nil
}

// Login verifies the credentials and returns a freshly issued token plus
// the public user projection.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.PublicUser{}, ErrMissingLoginFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, err
	}

	if err := s.verifyPassword(ctx, password, user.PasswordHash); err != nil {
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	return token, user.Public(), nil
}

// GetUserByID resolves a user id from a verified token to an account. The
// auth gate uses this after token verification; callers receive the user
// with the password hash already cleared.
func (s *AccountService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AccountService) issueToken(userID string) (string, error) {
	claims := jwtx.NewIdentityClaims(userID, s.Issuer, s.TokenTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// hashPassword runs bcrypt under the concurrency cap. Hashing is CPU-bound;
// the cap prevents a burst of signups from monopolizing every core.
func (s *AccountService) hashPassword(ctx context.Context, password string) (string, error) {
	select {
	case s.hashSlots <- struct{}{}:
		defer func() { <-s.hashSlots }()
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return cryptox.HashPassword(password, s.HashCost)
}

func (s *AccountService) verifyPassword(ctx context.Context, password, hash string) error {
	select {
	case s.hashSlots <- struct{}{}:
		defer func() { <-s.hashSlots }()
	case <-ctx.Done():
		return ctx.Err()
	}
	return cryptox.VerifyPassword(password, hash)
}

// NormalizeEmail lower-cases and trims an email address. All storage and
// lookups go through this so matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
