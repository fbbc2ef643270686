package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
)

// SQLSTATE undefined_table
const codeUndefinedTable = "42P01"

type tableSource struct {
	db    *DB
	table string
}

// NewTableSource reads a whole PostgreSQL table. The name may be schema-qualified.
func NewTableSource(db *DB, table string) repository.TableSource {
	return &tableSource{db: db, table: table}
}

func (s *tableSource) Describe() string {
	return "postgres:" + s.table
}

func (s *tableSource) Read(ctx context.Context) (*domain.Table, error) {
	query := "SELECT * FROM " + pgx.Identifier(strings.Split(s.table, ".")).Sanitize()

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable {
			return nil, apperrors.ErrSourceNotFound.
				WithMessage("Table %s not found", s.table).
				WithDetails(map[string]interface{}{"table": s.table}).
				Wrap(err)
		}
		return nil, fmt.Errorf("query table %s: %w", s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", s.table, err)
	}

	table := &domain.Table{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", s.table, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows of %s: %w", s.table, err)
	}

	return table, nil
}

// FormatValue renders a scanned value as cell text. NULL becomes an empty cell.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
