// Package csvfile は CSV ファイルから社員名簿を読み込むリポジトリ実装です。
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
)

const (
	utf8BOM          = "\uFEFF"
	ctxCheckInterval = 1000
)

// RosterRepository はヘッダ付き CSV を名簿として読み込みます。
type RosterRepository struct {
	path string
}

// NewRosterRepository は RosterRepository を生成します。
func NewRosterRepository(path string) *RosterRepository {
	return &RosterRepository{path: path}
}

// LoadRoster はファイル全体を読み込みます。呼び出しごとにファイルを開き直します。
func (r *RosterRepository) LoadRoster(ctx context.Context) (employee.Roster, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return employee.Roster{}, fmt.Errorf("%w: %s", employee.ErrRosterNotFound, r.path)
		}
		return employee.Roster{}, fmt.Errorf("%w: %v", employee.ErrRosterUnavailable, err)
	}
	defer f.Close()

	return ReadRoster(ctx, f)
}

// ReadRoster は r からヘッダ付き CSV を読み込みます。
// 既知のカラムだけを取り込み、空行や壊れた行は読み飛ばします。足りないセルは空として扱います。
func ReadRoster(ctx context.Context, r io.Reader) (employee.Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return employee.NewRoster(employee.NewSchema(), nil), nil
	}
	if err != nil {
		return employee.Roster{}, fmt.Errorf("%w: read csv header: %v", employee.ErrRosterUnavailable, err)
	}

	index := headerIndex(header)
	columns := make([]employee.Column, 0, len(index))
	for c := range index {
		columns = append(columns, c)
	}
	schema := employee.NewSchema(columns...)

	var records []employee.Employee
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return employee.Roster{}, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return employee.Roster{}, fmt.Errorf("%w: read csv: %v", employee.ErrRosterUnavailable, err)
		}
		if blank(row) {
			continue
		}

		fields := make(map[employee.Column]string, len(index))
		for c, i := range index {
			if i < len(row) {
				fields[c] = row[i]
			}
		}
		records = append(records, employee.FromFields(fields))
	}

	return employee.NewRoster(schema, records), nil
}

// headerIndex は既知カラムの列位置を返します。同じカラムが複数ある場合は先頭を採用します。
func headerIndex(header []string) map[employee.Column]int {
	index := make(map[employee.Column]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		col, ok := employee.ParseColumn(h)
		if !ok {
			continue
		}
		if _, dup := index[col]; dup {
			continue
		}
		index[col] = i
	}
	return index
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
