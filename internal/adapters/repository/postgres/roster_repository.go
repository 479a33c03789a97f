package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	pgdb "github.com/ogurasousui/workforce-kpi/internal/platform/db/postgres"
)

const (
	undefinedTableCode        = "42P01"
	insufficientPrivilegeCode = "42501"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const columnsQuery = `
        SELECT column_name
          FROM information_schema.columns
         WHERE table_name = $1
           AND table_schema = COALESCE(NULLIF($2, ''), current_schema())
         ORDER BY ordinal_position`

// RosterRepository は PostgreSQL の社員マスタテーブルから名簿を読み込みます。
// テーブルに存在するカラムだけを取得し、値はテキストとして受け取ってから解釈します。
type RosterRepository struct {
	pool   pgdb.Queryer
	schema string
	table  string
}

// NewRosterRepository は RosterRepository を生成します。table は "name" か "schema.name" 形式です。
func NewRosterRepository(pool pgdb.Queryer, table string) (*RosterRepository, error) {
	schema, name, err := splitTableName(table)
	if err != nil {
		return nil, err
	}
	return &RosterRepository{pool: pool, schema: schema, table: name}, nil
}

// LoadRoster は名簿全件を読み込みます。
func (r *RosterRepository) LoadRoster(ctx context.Context) (employee.Roster, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	columns, err := r.discoverColumns(ctx, exec)
	if err != nil {
		return employee.Roster{}, translateRosterPgError(err)
	}
	if len(columns) == 0 {
		return employee.Roster{}, fmt.Errorf("%w: table %s", employee.ErrRosterNotFound, r.qualifiedName())
	}

	rows, err := exec.Query(ctx, r.selectQuery(columns))
	if err != nil {
		return employee.Roster{}, translateRosterPgError(err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (employee.Employee, error) {
		return scanRosterRow(row, columns)
	})
	if err != nil {
		return employee.Roster{}, translateRosterPgError(err)
	}

	return employee.NewRoster(employee.NewSchema(columns...), records), nil
}

func (r *RosterRepository) discoverColumns(ctx context.Context, exec pgdb.Queryer) ([]employee.Column, error) {
	rows, err := exec.Query(ctx, columnsQuery, r.table, r.schema)
	if err != nil {
		return nil, err
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	seen := make(map[employee.Column]struct{}, len(names))
	columns := make([]employee.Column, 0, len(names))
	for _, name := range names {
		col, ok := employee.ParseColumn(name)
		if !ok || name != string(col) {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
	}
	return columns, nil
}

func (r *RosterRepository) selectQuery(columns []employee.Column) string {
	exprs := make([]string, len(columns))
	for i, c := range columns {
		ident := pgx.Identifier{string(c)}.Sanitize()
		exprs[i] = ident + "::text"
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), r.identifier().Sanitize())
}

func (r *RosterRepository) identifier() pgx.Identifier {
	if r.schema == "" {
		return pgx.Identifier{r.table}
	}
	return pgx.Identifier{r.schema, r.table}
}

func (r *RosterRepository) qualifiedName() string {
	if r.schema == "" {
		return r.table
	}
	return r.schema + "." + r.table
}

func scanRosterRow(row pgx.Row, columns []employee.Column) (employee.Employee, error) {
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := row.Scan(dest...); err != nil {
		return employee.Employee{}, err
	}

	fields := make(map[employee.Column]string, len(columns))
	for i, c := range columns {
		if values[i].Valid {
			fields[c] = values[i].String
		}
	}
	return employee.FromFields(fields), nil
}

func splitTableName(table string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	switch len(parts) {
	case 1:
		if identifierPattern.MatchString(parts[0]) {
			return "", parts[0], nil
		}
	case 2:
		if identifierPattern.MatchString(parts[0]) && identifierPattern.MatchString(parts[1]) {
			return parts[0], parts[1], nil
		}
	}
	return "", "", fmt.Errorf("postgres: invalid roster table name %q", table)
}

func translateRosterPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedTableCode:
			return fmt.Errorf("%w: %s", employee.ErrRosterNotFound, pgErr.Message)
		case insufficientPrivilegeCode:
			return fmt.Errorf("%w: %s", employee.ErrRosterUnavailable, pgErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", employee.ErrRosterUnavailable, err)
}
