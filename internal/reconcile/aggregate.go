package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

const (
	topServicesLimit = 3
	moneyPrecision   = 2
)

// Aggregate сводит заказы юзера и связанные с ним транзакции в UserMetrics.
//
// Ожидается, что transactions отсортированы по убыванию даты (так их возвращает Match): последняя
// транзакция берется из головы среза. Входные срезы не изменяются, повторный вызов с теми же данными
// дает идентичный результат.
//
// Ошибку возвращает только при отсутствии user или orders (nil). Пустой срез заказов допустим.
func Aggregate(
	user *domain.User,
	orders []domain.Order,
	transactions []domain.Transaction,
) (*domain.UserMetrics, error) {
	if user == nil {
		return nil, fmt.Errorf("aggregate: user is required: %w", domain.ErrInvalidArgument)
	}
	if orders == nil {
		return nil, fmt.Errorf("aggregate: orders are required for user %s: %w", user.ID, domain.ErrInvalidArgument)
	}

	metrics := domain.EmptyUserMetrics()
	aggregateOrders(metrics, orders)
	aggregateTransactions(metrics, transactions)
	metrics.ExternalPaymentIDs, metrics.UserEmails = collectIdentities(user, orders)
	return metrics, nil
}

func aggregateOrders(metrics *domain.UserMetrics, orders []domain.Order) {
	metrics.OrdersCount = len(orders)

	total := decimal.Zero
	var last *domain.Order
	for i := range orders {
		total = total.Add(orders[i].AmountOrZero())
		if last == nil || orders[i].CreatedAt.After(last.CreatedAt) {
			last = &orders[i]
		}
	}
	metrics.TotalSpent = total

	if metrics.OrdersCount > 0 {
		metrics.AvgOrderValue = total.DivRound(decimal.NewFromInt(int64(metrics.OrdersCount)), moneyPrecision)
	}

	if last != nil {
		metrics.LastPurchase = &domain.PurchaseSnapshot{
			ID:     last.ID.String(),
			Date:   last.CreatedAt,
			Status: last.Status,
			Amount: last.AmountOrZero(),
		}
	}

	metrics.TopServices = topServices(orders, topServicesLimit)
}

// topServices считает заказы по сервисам. Заказы обходятся в порядке создания (от старых к новым),
// сортировка по убыванию количества стабильная, поэтому при равенстве выше тот сервис, который встретился
// раньше.
func topServices(orders []domain.Order, limit int) []domain.ServiceCount {
	chronological := slices.Clone(orders)
	slices.SortStableFunc(chronological, func(a, b domain.Order) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	index := make(map[string]int)
	counts := make([]domain.ServiceCount, 0)
	for _, order := range chronological {
		serviceID := strings.TrimSpace(order.ServiceID)
		if serviceID == "" {
			continue
		}
		if i, ok := index[serviceID]; ok {
			counts[i].Count++
			continue
		}
		index[serviceID] = len(counts)
		counts = append(counts, domain.ServiceCount{ServiceID: serviceID, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b domain.ServiceCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func aggregateTransactions(metrics *domain.UserMetrics, transactions []domain.Transaction) {
	metrics.TransactionsCount = len(transactions)
	if len(transactions) == 0 {
		return
	}

	total := decimal.Zero
	index := make(map[string]int)
	methods := make([]domain.PaymentMethodCount, 0)
	for _, tx := range transactions {
		if tx.Status.IsSuccessful() {
			total = total.Add(tx.AmountOrZero())
		}

		method := domain.NormalizePaymentMethod(tx.PaymentMethod)
		if i, ok := index[method]; ok {
			methods[i].Count++
			continue
		}
		index[method] = len(methods)
		methods = append(methods, domain.PaymentMethodCount{Method: method, Count: 1})
	}
	metrics.TotalPayments = total

	slices.SortStableFunc(methods, func(a, b domain.PaymentMethodCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	metrics.PaymentMethods = methods
	preferred := methods[0].Method
	metrics.PreferredPaymentMethod = &preferred

	head := transactions[0]
	metrics.LastTransaction = &domain.TransactionSnapshot{
		ID:            head.ID,
		ExternalID:    head.ExternalID,
		Date:          head.CreatedAt,
		Status:        head.Status,
		Amount:        head.AmountOrZero(),
		PaymentMethod: domain.NormalizePaymentMethod(head.PaymentMethod),
	}
}

// collectIdentities собирает внешние идентификаторы платежей и email'ы юзера. Первым идет email из
// записи юзера, затем - найденные в метаданных заказов.
func collectIdentities(user *domain.User, orders []domain.Order) ([]string, []string) {
	var paymentIDs, emails CandidateSet
	emails.Add(strings.ToLower(user.Email))

	for _, order := range orders {
		md := ParseMetadata(order.Metadata)
		if md.Kind != MetadataParsed {
			continue
		}
		paymentIDs.Add(md.Fields.ExternalPaymentID, md.Fields.ExternalTransactionID)
		emails.Add(strings.ToLower(md.Fields.UserEmail))
	}
	return paymentIDs.Values(), emails.Values()
}
