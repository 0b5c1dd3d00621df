// Package services contains the application services of the GoMate client.
// This file defines the account service: the registry of local accounts and
// the single current-session slot, both kept in the key-value store.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/cryptox"
	"github.com/dmitrijs2005/gomate/internal/logging"
)

// AccountService defines the account operations of the client.
//
// Contract:
//   - Register: create an account and open a session for it.
//     Fails with common.ErrDuplicateEmail if the email is taken.
//   - Authenticate: check credentials and open a session.
//     Fails with common.ErrAccountNotFound or common.ErrInvalidCredentials,
//     both of which match common.ErrInvalidLogin.
//   - CurrentSession / ClearSession: read and drop the session slot.
//   - UpdateAccount: overwrite name and email of an account.
//   - ChangePassword: replace the credential after checking the current one;
//     false means the account is unknown or the password did not match.
//
// Storage failures are returned wrapped with common.ErrStorageFailure.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Authenticate(ctx context.Context, email string, password []byte) (*models.User, error)
	CurrentSession(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	ClearSession(ctx context.Context) error
	UpdateAccount(ctx context.Context, user models.User) error
	ChangePassword(ctx context.Context, email string, currentPassword, newPassword []byte) (bool, error)
}

type accountService struct {
	store  kv.Store
	logger logging.Logger
	now    func() time.Time
}

// NewAccountService constructs an AccountService over store.
func NewAccountService(store kv.Store, logger logging.Logger) AccountService {
	return &accountService{
		store:  store,
		logger: logger.With("service", "accounts"),
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) storageError(ctx context.Context, op, key string, err error) error {
	return logStorageFailure(ctx, s.logger, storageFailure(op, key, err))
}

func loadAccounts(ctx context.Context, r kv.Repository) ([]models.Account, error) {
	var accounts []models.Account
	if _, err := kv.GetJSON(ctx, r, common.KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

func findByEmail(accounts []models.Account, email string) int {
	email = normalizeEmail(email)
	return slices.IndexFunc(accounts, func(a models.Account) bool {
		return normalizeEmail(a.Email) == email
	})
}

// ListAccounts returns the full registry, empty when nothing is stored.
func (s *accountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := loadAccounts(ctx, s.store)
	if err != nil {
		return nil, s.storageError(ctx, "read", common.KeyAccounts, err)
	}
	return accounts, nil
}

// newAccountID derives an id from the creation time, moving forward one
// millisecond at a time if an account already uses it.
func newAccountID(accounts []models.Account, createdAt time.Time) string {
	ms := createdAt.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !slices.ContainsFunc(accounts, func(a models.Account) bool { return a.ID == id }) {
			return id
		}
		ms++
	}
}

func (s *accountService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	var user models.User
	err := update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		accounts, err := loadAccounts(ctx, r)
		if err != nil {
			return storageFailure("read", common.KeyAccounts, err)
		}
		if findByEmail(accounts, email) >= 0 {
			return common.ErrDuplicateEmail
		}

		createdAt := s.now().UTC()
		account := models.Account{
			ID:         newAccountID(accounts, createdAt),
			Email:      email,
			Name:       name,
			Credential: cryptox.NewCredential(password),
			CreatedAt:  createdAt,
		}

		accounts = append(accounts, account)
		if err := kv.SetJSON(ctx, r, common.KeyAccounts, accounts); err != nil {
			return storageFailure("write", common.KeyAccounts, err)
		}

		user = account.User()
		if err := kv.SetJSON(ctx, r, common.KeySession, user); err != nil {
			return storageFailure("write", common.KeySession, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "user_id", user.ID)
	return &user, nil
}

// verify checks password against the account, accepting the plaintext field
// of legacy records. The second result reports that the record should be
// rewritten with a proper credential.
func verify(a models.Account, password []byte) (ok bool, upgrade bool) {
	if len(a.Credential.Hash) > 0 {
		return a.Credential.Verify(password), false
	}
	if a.LegacyPassword == "" {
		return false, false
	}
	ok = subtle.ConstantTimeCompare([]byte(a.LegacyPassword), password) == 1
	return ok, ok
}

func (s *accountService) Authenticate(ctx context.Context, email string, password []byte) (*models.User, error) {
	var user models.User
	err := update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		accounts, err := loadAccounts(ctx, r)
		if err != nil {
			return storageFailure("read", common.KeyAccounts, err)
		}

		idx := findByEmail(accounts, email)
		if idx < 0 {
			return common.ErrAccountNotFound
		}

		ok, upgrade := verify(accounts[idx], password)
		if !ok {
			return common.ErrInvalidCredentials
		}

		if upgrade {
			accounts[idx].Credential = cryptox.NewCredential(password)
			accounts[idx].LegacyPassword = ""
			if err := kv.SetJSON(ctx, r, common.KeyAccounts, accounts); err != nil {
				return storageFailure("write", common.KeyAccounts, err)
			}
		}

		user = accounts[idx].User()
		if err := kv.SetJSON(ctx, r, common.KeySession, user); err != nil {
			return storageFailure("write", common.KeySession, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "login succeeded", "user_id", user.ID)
	return &user, nil
}

// CurrentSession returns the logged-in user or nil.
func (s *accountService) CurrentSession(ctx context.Context) (*models.User, error) {
	var user models.User
	found, err := kv.GetJSON(ctx, s.store, common.KeySession, &user)
	if err != nil {
		return nil, s.storageError(ctx, "read", common.KeySession, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (s *accountService) IsAuthenticated(ctx context.Context) (bool, error) {
	user, err := s.CurrentSession(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// ClearSession logs out. The registry is not touched.
func (s *accountService) ClearSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, common.KeySession); err != nil {
		return s.storageError(ctx, "delete", common.KeySession, err)
	}
	return nil
}

// UpdateAccount overwrites name and email of the account with user.ID and
// refreshes the session slot when that account is logged in. Moving to an
// email another account already uses fails with common.ErrDuplicateEmail.
func (s *accountService) UpdateAccount(ctx context.Context, user models.User) error {
	email := normalizeEmail(user.Email)
	name := strings.TrimSpace(user.Name)

	return update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		accounts, err := loadAccounts(ctx, r)
		if err != nil {
			return storageFailure("read", common.KeyAccounts, err)
		}

		idx := slices.IndexFunc(accounts, func(a models.Account) bool { return a.ID == user.ID })
		if idx < 0 {
			return fmt.Errorf("account %s: %w", user.ID, common.ErrorNotFound)
		}
		if other := findByEmail(accounts, email); other >= 0 && other != idx {
			return common.ErrDuplicateEmail
		}

		accounts[idx].Name = name
		accounts[idx].Email = email
		if err := kv.SetJSON(ctx, r, common.KeyAccounts, accounts); err != nil {
			return storageFailure("write", common.KeyAccounts, err)
		}

		var session models.User
		found, err := kv.GetJSON(ctx, r, common.KeySession, &session)
		if err != nil {
			return storageFailure("read", common.KeySession, err)
		}
		if found && session.ID == user.ID {
			if err := kv.SetJSON(ctx, r, common.KeySession, accounts[idx].User()); err != nil {
				return storageFailure("write", common.KeySession, err)
			}
		}
		return nil
	})
}

func (s *accountService) ChangePassword(ctx context.Context, email string, currentPassword, newPassword []byte) (bool, error) {
	changed := false
	err := update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		accounts, err := loadAccounts(ctx, r)
		if err != nil {
			return storageFailure("read", common.KeyAccounts, err)
		}

		idx := findByEmail(accounts, email)
		if idx < 0 {
			return nil
		}
		if ok, _ := verify(accounts[idx], currentPassword); !ok {
			return nil
		}

		accounts[idx].Credential = cryptox.NewCredential(newPassword)
		accounts[idx].LegacyPassword = ""
		if err := kv.SetJSON(ctx, r, common.KeyAccounts, accounts); err != nil {
			return storageFailure("write", common.KeyAccounts, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.logger.Info(ctx, "password changed")
	}
	return changed, nil
}
