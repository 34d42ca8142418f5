package helper

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique-index violation
// matching any of the given markers (index name, or a column name for
// drivers that only report columns). Uniqueness is enforced in the
// storage layer and surfaced as 409 instead of pre-checked, so
// concurrent writers cannot slip past validation.
func IsUniqueViolation(err error, markers ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return false
	}
	for _, m := range markers {
		if strings.Contains(msg, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// IsAnyUniqueViolation matches any unique violation, regardless of index.
func IsAnyUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique index") ||
		strings.Contains(msg, "duplicate key")
}

// IsForeignKeyViolation matches referential-integrity errors (e.g.
// deleting a class that still has sections).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}
