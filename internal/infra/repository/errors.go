package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
)

// notFound turns gorm's missing-row error into the not_found business error.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return err
}

func requireAffected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
