package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseSnapshot struct {
	ID     string
	Date   time.Time
	Status OrderStatusType
	Amount decimal.Decimal
}

type TransactionSnapshot struct {
	ID            string
	ExternalID    string
	Date          time.Time
	Status        TransactionStatusType
	Amount        decimal.Decimal
	PaymentMethod string
}

type ServiceCount struct {
	ServiceID string
	Count     int
}

type PaymentMethodCount struct {
	Method string
	Count  int
}

// UserMetrics производная проекция по заказам и связанным транзакциям юзера. Не сохраняется и не кешируется.
type UserMetrics struct {
	OrdersCount   int
	TotalSpent    decimal.Decimal
	AvgOrderValue decimal.Decimal
	LastPurchase  *PurchaseSnapshot
	TopServices   []ServiceCount

	TransactionsCount      int
	TotalPayments          decimal.Decimal
	LastTransaction        *TransactionSnapshot
	PaymentMethods         []PaymentMethodCount
	PreferredPaymentMethod *string

	ExternalPaymentIDs []string
	UserEmails         []string

	// Error заполняется, если метрики юзера не удалось посчитать и они нулевые.
	Error string
	// Degraded перечисляет источники, данные из которых временно недоступны.
	Degraded []string
}

// EmptyUserMetrics нулевые метрики с пустыми (не nil) коллекциями.
func EmptyUserMetrics() *UserMetrics {
	return &UserMetrics{
		TotalSpent:         decimal.Zero,
		AvgOrderValue:      decimal.Zero,
		TotalPayments:      decimal.Zero,
		TopServices:        []ServiceCount{},
		PaymentMethods:     []PaymentMethodCount{},
		ExternalPaymentIDs: []string{},
		UserEmails:         []string{},
	}
}

type UserWithMetrics struct {
	User    User
	Metrics *UserMetrics
}

type UsersPage struct {
	Users      []UserWithMetrics
	Page       uint
	Limit      uint
	TotalPages uint
	TotalItems int64
}

// DashboardSummary агрегированная сводка по обоим хранилищам.
type DashboardSummary struct {
	TotalUsers           int64
	TotalOrders          int64
	OrdersByStatus       map[OrderStatusType]int64
	TotalRevenue         decimal.Decimal
	TotalTransactions    int64
	TransactionsByStatus map[TransactionStatusType]int64
	TotalPayments        decimal.Decimal
	GeneratedAt          time.Time
	// Stale true, если сводка отдана из последнего удачного снимка, а не посчитана заново.
	Stale bool
}
