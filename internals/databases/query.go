package database

import (
	"strings"

	"gorm.io/gorm"
)

// ContainsFold returns a WHERE fragment matching column case-insensitively
// against a %term% pattern, and the escaped pattern to bind.
func ContainsFold(db *gorm.DB, column, term string) (string, string) {
	pattern := "%" + EscapeLike(term) + "%"
	if db.Dialector.Name() == "postgres" {
		return column + ` ILIKE ? ESCAPE '\'`, pattern
	}
	return "LOWER(" + column + `) LIKE LOWER(?) ESCAPE '\'`, pattern
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
