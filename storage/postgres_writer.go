package storage

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresWriter persists the report to PostgreSQL, one row per surviving
// composite key. Each Write replaces the rows of the previous run.
type PostgresWriter struct {
	db *sqlx.DB
}

// NewPostgresWriter connects to PostgreSQL and ensures the report table
// exists.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS dengue_rainfall_report (
			uf           VARCHAR(10) NOT NULL,
			year         VARCHAR(4)  NOT NULL,
			month        VARCHAR(2)  NOT NULL,
			rainfall     NUMERIC     NOT NULL,
			dengue_cases NUMERIC     NOT NULL,
			PRIMARY KEY (uf, year, month)
		)
	`)
	return err
}

// Write replaces the stored report with the given rows in one transaction.
func (pw *PostgresWriter) Write(rows [][]string) error {
	tx, err := pw.db.Beginx()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM dengue_rainfall_report`); err != nil {
		tx.Rollback()
		return fmt.Errorf("postgres: clear report: %w", err)
	}

	for _, row := range rows {
		if len(row) != 5 {
			tx.Rollback()
			return fmt.Errorf("postgres: report row has %d fields, want 5", len(row))
		}
		rainfall, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("postgres: parse rainfall %q: %w", row[3], err)
		}
		cases, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("postgres: parse dengue cases %q: %w", row[4], err)
		}

		if _, err := tx.Exec(
			`INSERT INTO dengue_rainfall_report (uf, year, month, rainfall, dengue_cases)
			 VALUES ($1, $2, $3, $4, $5)`,
			row[0], row[1], row[2], rainfall, cases,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("postgres: insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
