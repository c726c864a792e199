package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hometasks/internal/cache"
	apperrors "hometasks/internal/errors"
)

// translate maps storage errors to domain errors. notFound is returned for
// gorm.ErrRecordNotFound.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateField
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrInvalidReference
	default:
		return err
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// invalidateUsers drops cached user graphs after a committed write.
func invalidateUsers(ctx context.Context, c *cache.Client, ids ...uint) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, userCacheKey(id))
	}
	c.Delete(ctx, keys...)
}
