package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newAccounts(store kv.Store) *accountService {
	s := NewAccountService(store, logging.Nop()).(*accountService)
	s.now = stepClock(t0)
	return s
}

func stores(t *testing.T) map[string]kv.Store {
	return map[string]kv.Store{
		"memory": kv.NewMemoryStore(),
		"sqlite": newSQLiteStore(t),
	}
}

func TestRegister_CreatesAccountAndSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newAccounts(store)

			u, err := s.Register(ctx, "  Nimal  ", " Nimal@Example.COM ", []byte("secret1"))
			require.NoError(t, err)
			assert.Equal(t, "nimal@example.com", u.Email)
			assert.Equal(t, "Nimal", u.Name)
			assert.Equal(t, "1740823200000", u.ID)
			assert.True(t, u.CreatedAt.Equal(t0))

			accounts, err := s.ListAccounts(ctx)
			require.NoError(t, err)
			require.Len(t, accounts, 1)
			assert.Equal(t, u.ID, accounts[0].ID)
			assert.NotEmpty(t, accounts[0].Credential.Hash)
			assert.Empty(t, accounts[0].LegacyPassword)

			session, err := s.CurrentSession(ctx)
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, *u, *session)

			ok, err := s.IsAuthenticated(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())

	_, err := s.Register(ctx, "A", "a@x.io", []byte("p1"))
	require.NoError(t, err)
	before, err := s.ListAccounts(ctx)
	require.NoError(t, err)

	_, err = s.Register(ctx, "B", "A@X.IO", []byte("p2"))
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	after, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegister_UniqueIDsWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())
	s.now = func() time.Time { return t0 }

	a, err := s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.NoError(t, err)
	b, err := s.Register(ctx, "B", "b@x.io", []byte("p"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegister_SessionWriteFailureLeavesRegistryUntouched(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := newAccounts(store)

	store.failSet.Store(true)
	_, err := s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.ErrorIs(t, err, errBoom)
	store.failSet.Store(false)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())

	reg, err := s.Register(ctx, "A", "a@x.io", []byte("p1"))
	require.NoError(t, err)
	require.NoError(t, s.ClearSession(ctx))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "a@x.io", "p1", nil},
		{"ok mixed case", "  A@X.io", "p1", nil},
		{"wrong password", "a@x.io", "nope", common.ErrInvalidCredentials},
		{"unknown email", "b@x.io", "p1", common.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.ClearSession(ctx))

			u, err := s.Authenticate(ctx, tt.email, []byte(tt.password))
			session, serr := s.CurrentSession(ctx)
			require.NoError(t, serr)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, common.ErrInvalidLogin)
				assert.Contains(t, err.Error(), common.ErrInvalidLogin.Error())
				assert.Nil(t, u)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *reg, *u)
			require.NotNil(t, session)
			assert.Equal(t, reg.ID, session.ID)
		})
	}
}

func TestAuthenticate_UpgradesLegacyPlaintext(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	legacy := []models.Account{{
		ID:             "1700000000000",
		Email:          "old@x.io",
		Name:           "Old",
		LegacyPassword: "plain",
		CreatedAt:      t0,
	}}
	require.NoError(t, kv.SetJSON(ctx, store, common.KeyAccounts, legacy))

	s := newAccounts(store)

	_, err := s.Authenticate(ctx, "old@x.io", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	u, err := s.Authenticate(ctx, "old@x.io", []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", u.ID)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Empty(t, accounts[0].LegacyPassword)
	assert.True(t, accounts[0].Credential.Verify([]byte("plain")))

	_, err = s.Authenticate(ctx, "old@x.io", []byte("plain"))
	require.NoError(t, err)
}

func TestClearSession_KeepsRegistry(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())

	_, err := s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.NoError(t, err)
	require.NoError(t, s.ClearSession(ctx))

	session, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	// clearing twice is fine
	require.NoError(t, s.ClearSession(ctx))
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())

	a, err := s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.NoError(t, err)
	b, err := s.Register(ctx, "B", "b@x.io", []byte("p"))
	require.NoError(t, err)
	// b is the active session now

	t.Run("other account leaves session alone", func(t *testing.T) {
		upd := *a
		upd.Name = " Alice "
		upd.Email = "ALICE@x.io"
		require.NoError(t, s.UpdateAccount(ctx, upd))

		accounts, err := s.ListAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Alice", accounts[0].Name)
		assert.Equal(t, "alice@x.io", accounts[0].Email)
		assert.NotEmpty(t, accounts[0].Credential.Hash)

		session, err := s.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, *b, *session)
	})

	t.Run("active account refreshes session", func(t *testing.T) {
		upd := *b
		upd.Name = "Bob"
		require.NoError(t, s.UpdateAccount(ctx, upd))

		session, err := s.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bob", session.Name)
		assert.Equal(t, b.ID, session.ID)
	})

	t.Run("email owned by another account", func(t *testing.T) {
		upd := *b
		upd.Email = "alice@x.io"
		require.ErrorIs(t, s.UpdateAccount(ctx, upd), common.ErrDuplicateEmail)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := s.UpdateAccount(ctx, models.User{ID: "nope", Email: "z@x.io"})
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("new login works with updated email", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "alice@x.io", []byte("p"))
		require.NoError(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(kv.NewMemoryStore())

	_, err := s.Register(ctx, "A", "a@x.io", []byte("old"))
	require.NoError(t, err)

	snapshot := func() []models.Account {
		accounts, err := s.ListAccounts(ctx)
		require.NoError(t, err)
		return accounts
	}

	before := snapshot()

	ok, err := s.ChangePassword(ctx, "a@x.io", []byte("wrong"), []byte("new"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, snapshot())

	ok, err = s.ChangePassword(ctx, "nobody@x.io", []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, snapshot())

	ok, err = s.ChangePassword(ctx, "A@x.io", []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Authenticate(ctx, "a@x.io", []byte("old"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "a@x.io", []byte("new"))
	require.NoError(t, err)
}

func TestAccountService_StorageFailures(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := newAccounts(store)

	_, err := s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.NoError(t, err)

	store.failGet.Store(true)

	_, err = s.ListAccounts(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = s.CurrentSession(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = s.IsAuthenticated(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = s.Authenticate(ctx, "a@x.io", []byte("p"))
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.NotErrorIs(t, err, common.ErrInvalidLogin)

	ok, err := s.ChangePassword(ctx, "a@x.io", []byte("p"), []byte("q"))
	require.ErrorIs(t, err, common.ErrStorageFailure)
	assert.False(t, ok)

	store.failGet.Store(false)
	store.failDelete.Store(true)
	require.ErrorIs(t, s.ClearSession(ctx), common.ErrStorageFailure)
}

func TestAccountService_CorruptRegistry(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, common.KeyAccounts, []byte("{not json")))

	s := newAccounts(store)
	_, err := s.ListAccounts(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = s.Register(ctx, "A", "a@x.io", []byte("p"))
	require.ErrorIs(t, err, common.ErrStorageFailure)
}

func TestAccounts_RegisterLoginScenario(t *testing.T) {
	ctx := context.Background()
	s := newAccounts(newSQLiteStore(t))

	amal, err := s.Register(ctx, "Amal", "a@x.com", []byte("secret1"))
	require.NoError(t, err)
	session, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "Amal", session.Name)

	u, err := s.Authenticate(ctx, "A@X.COM", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, amal.ID, u.ID)

	_, err = s.Authenticate(ctx, "a@x.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidLogin)

	session, err = s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, amal.ID, session.ID)
}
