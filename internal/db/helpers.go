package db

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

// Builder produces MySQL-style (?) placeholders.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// IsDuplicateKey reports MySQL error 1062 (unique constraint).
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// IsForeignKeyViolation reports MySQL errors 1451/1452.
func IsForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1451 || me.Number == 1452)
}

// NormalizePage clamps page/pageSize and returns the row offset.
func NormalizePage(page, pageSize int) (int, int, uint64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, uint64((page - 1) * pageSize)
}

// LikePattern wraps a keyword for a contains-style LIKE.
func LikePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + r.Replace(strings.TrimSpace(keyword)) + "%"
}
