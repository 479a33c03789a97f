package employee

import "errors"

var (
	// ErrRosterUnavailable は名簿ソースから読み込めない場合に返却されます。
	ErrRosterUnavailable = errors.New("employee: roster unavailable")
	// ErrRosterNotFound は名簿テーブルやファイルが存在しない場合に返却されます。
	ErrRosterNotFound = errors.New("employee: roster not found")
)
