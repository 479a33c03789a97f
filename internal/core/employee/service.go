package employee

import (
	"context"
	"errors"
	"fmt"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は名簿取得ユースケースの公開インターフェースです。
type UseCase interface {
	LoadRoster(ctx context.Context) (Roster, error)
}

// Service は名簿の読み込みをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// LoadRoster は読み取り専用トランザクション内で名簿を読み込み、正規化したスナップショットを返します。
func (s *Service) LoadRoster(ctx context.Context) (Roster, error) {
	var roster Roster
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		loaded, err := s.repo.LoadRoster(txCtx)
		if err != nil {
			return err
		}
		roster = NewRoster(loaded.Schema, loaded.Records)
		return nil
	}); err != nil {
		if errors.Is(err, ErrRosterNotFound) || errors.Is(err, ErrRosterUnavailable) {
			return Roster{}, err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Roster{}, err
		}
		return Roster{}, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}
	return roster, nil
}
