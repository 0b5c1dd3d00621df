package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
)

// storageFailure wraps err with common.ErrStorageFailure. It does not log:
// callers outside a transaction log it themselves, and failures raised
// inside Store.Update are logged once by update.
func storageFailure(op, key string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, key, common.ErrStorageFailure, err)
}

func logStorageFailure(ctx context.Context, logger logging.Logger, err error) error {
	logger.Error(ctx, "storage operation failed", "error", err)
	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, common.ErrDuplicateEmail) ||
		errors.Is(err, common.ErrInvalidLogin) ||
		errors.Is(err, common.ErrorNotFound)
}

// update runs fn in store.Update. The store reports begin and commit
// failures as raw driver errors; those are wrapped with
// common.ErrStorageFailure too. Domain errors returned by fn pass through
// unchanged and unlogged.
func update(ctx context.Context, store kv.Store, logger logging.Logger, fn func(ctx context.Context, r kv.Repository) error) error {
	err := store.Update(ctx, fn)
	if err == nil || isDomainError(err) {
		return err
	}
	if !errors.Is(err, common.ErrStorageFailure) {
		err = storageFailure("update", "transaction", err)
	}
	return logStorageFailure(ctx, logger, err)
}
