package uow

import (
	"sync"

	"github.com/jackc/pgx/v5"
)

// Transaction выдает репозитории поверх одной pgx транзакции. Каждый репозиторий создается один раз.
type Transaction struct {
	factories map[RepositoryName]RepositoryFactory
	tx        pgx.Tx

	mu    sync.Mutex
	built map[RepositoryName]Repository
}

func NewTransaction(tx pgx.Tx, factories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{
		factories: factories,
		tx:        tx,
		built:     make(map[RepositoryName]Repository, len(factories)),
	}
}

// Get возвращает репозиторий, работающий внутри транзакции, или ошибку ErrRepositoryNotRegistered.
func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if repo, ok := t.built[name]; ok {
		return repo, nil
	}
	factory, ok := t.factories[name]
	if !ok {
		return nil, ErrRepositoryNotRegistered
	}
	repo := factory(t.tx)
	t.built[name] = repo
	return repo, nil
}

// GetAs то же, что Get, с приведением к T. Если тип не совпал, возвращает ErrInvalidRepositoryType.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	var res T
	repo, err := t.Get(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	typed, ok := repo.(T)
	if !ok {
		return res, ErrInvalidRepositoryType
	}
	return typed, nil
}
