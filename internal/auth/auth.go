package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/repository/gql"
)

var (
	ErrEmailRequired    = errors.New("Email cannot be empty.")
	ErrEmailInvalid     = errors.New("Email must be a valid email address.")
	ErrPasswordRequired = errors.New("Password cannot be empty.")
	ErrPasswordWeak     = errors.New("Your password must start with a letter, contain one number and be 6 characters or longer.")
)

// Result represents the outcome of a login attempt
type Result struct {
	Token string
	User  *domain.User
	// NeedsPassword is set when the account has a password and none was given
	NeedsPassword bool
	Error         error
}

// TokenStore persists the session token between runs
type TokenStore interface {
	SaveToken(token string) error
}

// Auth signs users in against the account API and keeps the token
type Auth struct {
	accounts domain.AccountRepository
	store    TokenStore
}

func NewAuth(accounts domain.AccountRepository, store TokenStore) *Auth {
	return &Auth{
		accounts: accounts,
		store:    store,
	}
}

// Login validates the credentials, exchanges them for a token, stores it and fetches the signed-in user.
// Password may be empty for accounts that do not have one yet.
func (a *Auth) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return Result{Error: err}
	}

	token, err := a.accounts.Login(ctx, email, password)
	if err != nil {
		if gql.CodeOf(err) == gql.CodePreconditionRequired {
			log.Info("Account requires a password", "email", email)
			return Result{NeedsPassword: true, Error: err}
		}
		log.Warn("Login failed", "email", email, "error", err)
		return Result{Error: err}
	}

	if a.store != nil {
		if err := a.store.SaveToken(token); err != nil {
			return Result{Error: fmt.Errorf("logged in but failed to save token: %w", err)}
		}
	}

	user, err := a.accounts.Me(ctx)
	if err != nil {
		return Result{Token: token, Error: err}
	}

	log.Info("Authenticated", "user", user.ID, "type", user.Type)
	return Result{Token: token, User: user}
}

// Resume checks a stored token at startup.  The token is swapped for a fresh one and the user fetched; an
// expired session comes back as an error matching gql.ErrUnauthenticated.
func (a *Auth) Resume(ctx context.Context) Result {
	token, err := a.accounts.RefreshToken(ctx)
	if err != nil {
		return Result{Error: err}
	}

	if a.store != nil {
		if err := a.store.SaveToken(token); err != nil {
			log.Warn("Failed to save refreshed token", "error", err)
		}
	}

	user, err := a.accounts.Me(ctx)
	if err != nil {
		return Result{Token: token, Error: err}
	}
	return Result{Token: token, User: user}
}

// CurrentUser fetches the signed-in account, including its token balance
func (a *Auth) CurrentUser(ctx context.Context) (*domain.User, error) {
	return a.accounts.Me(ctx)
}

// Complete turns the signed-in guest account into a full account
func (a *Auth) Complete(ctx context.Context, params domain.CompleteParams) error {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return errors.New("Name cannot be empty.")
	}
	if err := ValidatePassword(params.Password); err != nil {
		return err
	}
	if err := a.accounts.Complete(ctx, params); err != nil {
		if gql.CodeOf(err) == gql.CodeUserCompletionNotGuest {
			return fmt.Errorf("account is already complete: %w", err)
		}
		return err
	}
	log.Info("Account completed", "name", params.Name)
	return nil
}

// Logout forgets the stored token
func (a *Auth) Logout() error {
	if a.store == nil {
		return nil
	}
	return a.store.SaveToken("")
}

// ValidateEmail checks that s is a bare email address
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword enforces the account password rules: starts with a letter, contains a digit, at least 6
// characters, and only letters, digits or #$@!%&*?
func ValidatePassword(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrPasswordRequired
	}
	if len(s) < 6 || !isLetter(rune(s[0])) {
		return ErrPasswordWeak
	}

	hasDigit := false
	for _, r := range s {
		switch {
		case isLetter(r):
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("#$@!%&*?", r):
		default:
			return ErrPasswordWeak
		}
	}
	if !hasDigit {
		return ErrPasswordWeak
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
