package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "trackline/internal/errors"
)

// fieldErrors collects create-validation failures so a request missing
// several fields reports all of them at once instead of failing on the
// first.
type fieldErrors struct {
	messages []string
}

func (f *fieldErrors) addMissing(field string) {
	f.messages = append(f.messages, fmt.Sprintf("%s is required", field))
}

// err returns nil when nothing was collected, otherwise a single
// BadRequest whose message concatenates every collected failure.
func (f *fieldErrors) err() error {
	if len(f.messages) == 0 {
		return nil
	}
	return apperrors.NewBadRequest(strings.Join(f.messages, "; "))
}

// noChanges is the rejection for an update whose fields all match the
// current entity state. Identical resubmission is an error, not a no-op
// success.
func noChanges() error {
	return apperrors.NewBadRequest("no changes")
}

// resolveErr converts a repository lookup failure into the uniform
// not-found error for the entity, passing everything else through.
func resolveErr(err error, entityName string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(entityName, id)
	}
	return err
}
