package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
)

// SQLWriter inserts each chunk of people into a relational table inside a
// single transaction.
type SQLWriter struct {
	DB    *sql.DB
	Table string
}

func NewSQLWriter(db *sql.DB, table string) (*SQLWriter, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	return &SQLWriter{DB: db, Table: table}, nil
}

func (w *SQLWriter) insertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (first_name, last_name) VALUES (@p1, @p2)", w.Table)
}

// Write runs one prepared INSERT per record and commits once. Any failure
// rolls the whole chunk back. Rows are never deduplicated.
func (w *SQLWriter) Write(ctx context.Context, items []models.Person) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin transaction", Index: -1, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, w.insertQuery())
	if err != nil {
		_ = tx.Rollback()
		return &PersistenceError{Op: "prepare insert", Index: -1, Err: err}
	}
	defer stmt.Close()

	for i, p := range items {
		if _, err := stmt.ExecContext(ctx, p.FirstName, p.LastName); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Errorf("Rollback after failed insert into %s: %v", w.Table, rbErr)
			}
			return &PersistenceError{Op: "insert into " + w.Table, Index: i, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Index: -1, Err: err}
	}
	logger.Debugf("SQL Writer: inserted %d rows into %s", len(items), w.Table)
	return nil
}

// CountRows returns the current number of rows in the destination table.
func (w *SQLWriter) CountRows(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", w.Table)
	if err := w.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", w.Table, err)
	}
	return n, nil
}
