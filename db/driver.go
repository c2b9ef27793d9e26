package db

import (
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
)

// DriverName is the sqlite3 driver with RecruitIQ's SQL functions registered
const DriverName = "sqlite3_recruitiq"

// FoldFunc is the SQL name of FoldCase. SQLite's own LIKE and lower() only
// fold ASCII letters.
const FoldFunc = "rq_fold"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(FoldFunc, FoldCase, true)
		},
	})
}

// FoldCase returns the Unicode case folding of s ("Ünïcorp" and "ünïcorp" fold alike)
func FoldCase(s string) string {
	return cases.Fold().String(s)
}
