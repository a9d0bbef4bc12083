package services

import (
	"errors"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"gorm.io/gorm"
)

// lookupErr maps a failed single-row lookup onto the taxonomy.
func lookupErr(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return apperr.Database("loading "+entity, err)
}

// listErr keeps list failures opaque to the caller.
func listErr(err error, entity string) error {
	return apperr.Database("listing "+entity, err)
}

// passThrough returns err untouched when it is already classified, and
// wraps it as a database error otherwise. Used on transaction results.
func passThrough(err error, op string) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	return apperr.Database(op, err)
}

// exists reports whether a row with id exists in model's table.
func exists(tx *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
