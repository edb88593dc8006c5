package postgres

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/viralforge/campaign-marketplace/internal/domain"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// jsonStrings encodes a list column for map-based updates, which bypass the
// model's json serializer.
func jsonStrings(v []string) string {
	raw, _ := json.Marshal(nonNilStrings(v))
	return string(raw)
}
