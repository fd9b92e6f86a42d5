package dbutil

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var limitRegex = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

// Finalize adapts a gendry-built statement to the placeholder style of the
// target driver. Postgres does not understand "LIMIT ?, ?" or backtick
// quoting, so both are rewritten and the LIMIT arguments swapped.
func Finalize(bindType int, query string, args []interface{}) (string, []interface{}) {
	if bindType != sqlx.DOLLAR {
		return query, args
	}
	query = strings.ReplaceAll(query, "`", `"`)
	loc := limitRegex.FindStringIndex(query)
	if loc != nil {
		prefix := query[:loc[0]]
		qCount := strings.Count(prefix, "?")
		if qCount+1 < len(args) {
			args[qCount], args[qCount+1] = args[qCount+1], args[qCount]
			query = limitRegex.ReplaceAllString(query, "LIMIT ? OFFSET ?")
		}
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// IsConflict reports a unique or primary key violation from either driver.
func IsConflict(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// NullableJSON encodes v for a nullable TEXT column. A nil slice or nil
// pointer is stored as NULL so that "never computed" survives a round trip.
func NullableJSON(v interface{}) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	if ss, ok := v.([]string); ok && ss == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	if string(data) == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// DecodeStrings is the inverse of NullableJSON for string lists.
func DecodeStrings(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}
	out := make([]string, 0)
	if strings.TrimSpace(raw.String) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func DecodeJSON(raw sql.NullString, dst interface{}) error {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), dst)
}

func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func StringPtr(raw sql.NullString) *string {
	if !raw.Valid {
		return nil
	}
	s := raw.String
	return &s
}
