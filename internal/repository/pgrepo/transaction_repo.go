package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const transactionsByExternalIDQuery = `
SELECT id::text, external_id, COALESCE(status, ''), amount, COALESCE(payment_method, ''), created_at
FROM transactions
WHERE external_id LIKE ANY($1::text[])
ORDER BY created_at DESC, id
LIMIT $2`

const transactionsStatusSummaryQuery = `
SELECT COALESCE(status, ''), count(*), COALESCE(sum(amount), 0)
FROM transactions
GROUP BY status`

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

// FindByExternalIDCandidates ищет транзакции, external_id которых содержит любого из кандидатов подстрокой.
// Выборка ограничена repoargs.MaxMatchedTransactions самыми новыми транзакциями.
// Для пустого набора кандидатов запрос не выполняется. Дедупликация и итоговая сортировка остаются
// на вызывающей стороне (reconcile.Match).
func (t *TransactionRepository) FindByExternalIDCandidates(
	ctx context.Context,
	candidates []string,
) ([]domain.Transaction, error) {
	patterns := containsPatterns(candidates)
	if len(patterns) == 0 {
		return []domain.Transaction{}, nil
	}

	rows, err := t.conn.Query(ctx, transactionsByExternalIDQuery, patterns, repoargs.MaxMatchedTransactions)
	if err != nil {
		return nil, convertErr(err, "finding transactions by %d candidates", len(patterns))
	}
	transactions, collectErr := pgx.CollectRows(rows, scanTransaction)
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning transactions")
	}
	return transactions, nil
}

// StatusSummary возвращает количество и сумму транзакций по каждому сырому статусу.
func (t *TransactionRepository) StatusSummary(ctx context.Context) ([]repoargs.StatusAggregation, error) {
	rows, err := t.conn.Query(ctx, transactionsStatusSummaryQuery)
	if err != nil {
		return nil, convertErr(err, "summarizing transactions")
	}
	summary, collectErr := pgx.CollectRows(rows, scanStatusAggregation)
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning transactions summary")
	}
	return summary, nil
}

func scanTransaction(row pgx.CollectableRow) (domain.Transaction, error) {
	var tx domain.Transaction
	var status, method string
	err := row.Scan(
		&tx.ID,
		&tx.ExternalID,
		&status,
		&tx.Amount,
		&method,
		&tx.CreatedAt,
	)
	tx.Status = domain.NormalizeTransactionStatus(status)
	tx.PaymentMethod = domain.NormalizePaymentMethod(method)
	return tx, err //nolint:wrapcheck
}
