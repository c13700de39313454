package database

import (
	"gorm.io/gorm"
)

// Paginate applies offset/limit pagination to a GORM query. The caller is
// expected to have validated both values already.
func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
