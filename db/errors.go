package db

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

// MySQL error 1062: ER_DUP_ENTRY.
const dupEntryErrNumber = 1062

var dupKeyRegexp = regexp.MustCompile(`for key '([^']+)'`)

// IsDupKeyErr reports whether err is a MySQL duplicate-key violation.
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == dupEntryErrNumber
}

// GetDupKey extracts the name of the unique key a duplicate-key violation
// offended, or "" if it cannot be determined.
func GetDupKey(err error) string {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return ""
	}
	match := dupKeyRegexp.FindStringSubmatch(mysqlErr.Message)
	if match == nil {
		return ""
	}
	return match[1]
}
