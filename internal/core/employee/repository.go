package employee

import "context"

// Repository は名簿読み込みの抽象です。PostgreSQL や CSV ファイルが実装します。
type Repository interface {
	LoadRoster(ctx context.Context) (Roster, error)
}
