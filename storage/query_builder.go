package storage

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teranos/recruitiq/db"
)

// queryBuilder accumulates SQL WHERE clauses and parameters for posting queries
type queryBuilder struct {
	whereClauses []string
	args         []interface{}
}

// addClause appends a WHERE clause with its arguments
func (qb *queryBuilder) addClause(clause string, args ...interface{}) {
	qb.whereClauses = append(qb.whereClauses, clause)
	qb.args = append(qb.args, args...)
}

// build returns the WHERE clauses joined with AND
func (qb *queryBuilder) build() string {
	return strings.Join(qb.whereClauses, " AND ")
}

// substringMatch returns a case-insensitive "column contains value" clause
// and its pattern. SQLite LIKE only ignores ASCII case, so values with other
// letters compare both sides through the registered fold function.
func substringMatch(column, value string) (string, string) {
	if isASCII(value) {
		return column + ` LIKE ? ESCAPE '\'`, "%" + escapeLikePattern(value) + "%"
	}
	return db.FoldFunc + `(coalesce(` + column + `, '')) LIKE ? ESCAPE '\'`,
		"%" + escapeLikePattern(db.FoldCase(value)) + "%"
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// buildSubstringFilter matches value anywhere in any of columns (OR logic)
func (qb *queryBuilder) buildSubstringFilter(value string, columns ...string) {
	value = strings.TrimSpace(value)
	if value == "" || len(columns) == 0 {
		return
	}

	clauses := make([]string, len(columns))
	for i, column := range columns {
		clause, pattern := substringMatch(column, value)
		clauses[i] = clause
		qb.args = append(qb.args, pattern)
	}
	if len(clauses) == 1 {
		qb.whereClauses = append(qb.whereClauses, clauses[0])
		return
	}
	qb.whereClauses = append(qb.whereClauses, "("+strings.Join(clauses, " OR ")+")")
}

// buildSalaryFilter applies "at least min" and "at most max" bounds
func (qb *queryBuilder) buildSalaryFilter(min, max *float64) {
	if min != nil {
		qb.addClause("(salary_min >= ? OR salary_max >= ?)", *min, *min)
	}
	if max != nil {
		qb.addClause("(salary_min <= ? AND salary_min IS NOT NULL)", *max)
	}
}

// buildRecencyFilter keeps postings dated at or after cutoff
func (qb *queryBuilder) buildRecencyFilter(cutoff time.Time) {
	qb.addClause("posted_date >= ?", formatTime(cutoff))
}

// escapeLikePattern escapes special characters in LIKE patterns for SQL ESCAPE clause
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
