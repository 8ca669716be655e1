package pgrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const ordersByUserQuery = `
SELECT id, user_id, COALESCE(status, ''), amount, COALESCE(service_id::text, ''), metadata, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id`

const ordersStatusSummaryQuery = `
SELECT COALESCE(status, ''), count(*), COALESCE(sum(amount), 0)
FROM orders
GROUP BY status`

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// GetByUserID Возвращает список заказов по id юзера, отсортированный по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx, ordersByUserQuery, userID)
	if err != nil {
		return nil, convertErr(err, "getting orders by userID `%s`", userID)
	}
	orders, collectErr := pgx.CollectRows(rows, scanOrder)
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning orders of userID `%s`", userID)
	}
	return orders, nil
}

// StatusSummary возвращает количество и сумму заказов по каждому сырому статусу.
func (o *OrderRepository) StatusSummary(ctx context.Context) ([]repoargs.StatusAggregation, error) {
	rows, err := o.conn.Query(ctx, ordersStatusSummaryQuery)
	if err != nil {
		return nil, convertErr(err, "summarizing orders")
	}
	summary, collectErr := pgx.CollectRows(rows, scanStatusAggregation)
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning orders summary")
	}
	return summary, nil
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var order domain.Order
	var status string
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&status,
		&order.Amount,
		&order.ServiceID,
		&order.Metadata,
		&order.CreatedAt,
	)
	order.Status = domain.NormalizeOrderStatus(status)
	return order, err //nolint:wrapcheck
}

func scanStatusAggregation(row pgx.CollectableRow) (repoargs.StatusAggregation, error) {
	var agg repoargs.StatusAggregation
	err := row.Scan(&agg.Status, &agg.Count, &agg.Amount)
	return agg, err //nolint:wrapcheck
}
