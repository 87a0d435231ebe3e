// database/register_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/models"
)

const (
	ProjectsTable   = "ltp_projects"
	FinancialsTable = "afe_requests"
)

// FetchProjectRecords reads every LTP Hub row from the ltp_projects table.
// NULL columns come back as empty strings.
func FetchProjectRecords(ctx context.Context) ([]models.ProjectRecord, error) {
	return fetchRegister[models.ProjectRecord](ctx, ProjectsTable)
}

// FetchFinancialRecords reads every AFE row from the afe_requests table.
func FetchFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error) {
	return fetchRegister[models.FinancialRecord](ctx, FinancialsTable)
}

func fetchRegister[T any](ctx context.Context, table string) ([]T, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	query := selectQuery[T](table)
	rows, err := DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := scanRecord[T](rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}

	logger.Log.Infof("Database: fetched %d rows from %s", len(records), table)
	return records, nil
}

// dbColumns lists the db tags of T's string fields in declaration order.
func dbColumns[T any]() []string {
	t := reflect.TypeFor[T]()
	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" && f.Type.Kind() == reflect.String {
			cols = append(cols, tag)
		}
	}
	return cols
}

// selectQuery keeps rows in insertion order so the first AFE per project
// is stable between runs.
func selectQuery[T any](table string) string {
	quoted := make([]string, 0)
	for _, c := range dbColumns[T]() {
		quoted = append(quoted, "`"+c+"`")
	}
	return fmt.Sprintf("SELECT %s FROM `%s` ORDER BY `row_id`", strings.Join(quoted, ", "), table)
}

func scanRecord[T any](rows *sql.Rows) (T, error) {
	var rec T
	v := reflect.ValueOf(&rec).Elem()
	t := v.Type()

	var fields []reflect.Value
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" && f.Type.Kind() == reflect.String {
			fields = append(fields, v.Field(i))
		}
	}

	dest := make([]sql.NullString, len(fields))
	ptrs := make([]any, len(fields))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return rec, err
	}
	for i, ns := range dest {
		if ns.Valid {
			fields[i].SetString(ns.String)
		}
	}
	return rec, nil
}
