package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

type PurchaseResponse struct {
	ID     string                 `json:"id"`
	Date   time.Time              `json:"date"`
	Status domain.OrderStatusType `json:"status"`
	Amount float64                `json:"amount"`
}

type TransactionResponse struct {
	ID            string                       `json:"id"`
	ExternalID    string                       `json:"external_id"`
	Date          time.Time                    `json:"date"`
	Status        domain.TransactionStatusType `json:"status"`
	Amount        float64                      `json:"amount"`
	PaymentMethod string                       `json:"payment_method"`
}

type ServiceCountResponse struct {
	ServiceID string `json:"service_id"`
	Count     int    `json:"count"`
}

type PaymentMethodResponse struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

type MetricsResponse struct {
	OrdersCount            int                     `json:"orders_count"`
	TotalSpent             float64                 `json:"total_spent"`
	LastPurchase           *PurchaseResponse       `json:"last_purchase"`
	TopServices            []ServiceCountResponse  `json:"top_services"`
	AvgOrderValue          float64                 `json:"avg_order_value"`
	TransactionsCount      int                     `json:"transactions_count"`
	TotalPayments          float64                 `json:"total_payments"`
	LastTransaction        *TransactionResponse    `json:"last_transaction"`
	PaymentMethods         []PaymentMethodResponse `json:"payment_methods"`
	PreferredPaymentMethod *string                 `json:"preferred_payment_method"`
	ExternalPaymentIDs     []string                `json:"external_payment_ids"`
	UserEmails             []string                `json:"user_emails"`
	Error                  string                  `json:"error,omitempty"`
	Degraded               []string                `json:"degraded,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Metrics   MetricsResponse `json:"metrics"`
}

type UsersPageResponse struct {
	Users      []UserResponse `json:"users"`
	Page       uint           `json:"page"`
	TotalPages uint           `json:"totalPages"`
	TotalItems int64          `json:"totalItems"`
}

type DashboardResponse struct {
	TotalUsers           int64            `json:"total_users"`
	TotalOrders          int64            `json:"total_orders"`
	OrdersByStatus       map[string]int64 `json:"orders_by_status"`
	TotalRevenue         float64          `json:"total_revenue"`
	TotalTransactions    int64            `json:"total_transactions"`
	TransactionsByStatus map[string]int64 `json:"transactions_by_status"`
	TotalPayments        float64          `json:"total_payments"`
	GeneratedAt          time.Time        `json:"generated_at"`
	Stale                bool             `json:"stale"`
}

func newUserResponse(item domain.UserWithMetrics) UserResponse {
	return UserResponse{
		ID:        item.User.ID,
		Email:     item.User.Email,
		Name:      item.User.Name,
		Phone:     item.User.Phone,
		Role:      item.User.Role,
		CreatedAt: item.User.CreatedAt,
		UpdatedAt: item.User.UpdatedAt,
		Metrics:   newMetricsResponse(item.Metrics),
	}
}

func newMetricsResponse(m *domain.UserMetrics) MetricsResponse {
	if m == nil {
		m = domain.EmptyUserMetrics()
	}
	res := MetricsResponse{
		OrdersCount:            m.OrdersCount,
		TotalSpent:             m.TotalSpent.InexactFloat64(),
		AvgOrderValue:          m.AvgOrderValue.InexactFloat64(),
		TopServices:            make([]ServiceCountResponse, len(m.TopServices)),
		TransactionsCount:      m.TransactionsCount,
		TotalPayments:          m.TotalPayments.InexactFloat64(),
		PaymentMethods:         make([]PaymentMethodResponse, len(m.PaymentMethods)),
		PreferredPaymentMethod: m.PreferredPaymentMethod,
		ExternalPaymentIDs:     nonNil(m.ExternalPaymentIDs),
		UserEmails:             nonNil(m.UserEmails),
		Error:                  m.Error,
		Degraded:               m.Degraded,
	}
	for i, svc := range m.TopServices {
		res.TopServices[i] = ServiceCountResponse{ServiceID: svc.ServiceID, Count: svc.Count}
	}
	for i, pm := range m.PaymentMethods {
		res.PaymentMethods[i] = PaymentMethodResponse{Method: pm.Method, Count: pm.Count}
	}
	if p := m.LastPurchase; p != nil {
		res.LastPurchase = &PurchaseResponse{
			ID:     p.ID,
			Date:   p.Date,
			Status: p.Status,
			Amount: p.Amount.InexactFloat64(),
		}
	}
	if t := m.LastTransaction; t != nil {
		res.LastTransaction = &TransactionResponse{
			ID:            t.ID,
			ExternalID:    t.ExternalID,
			Date:          t.Date,
			Status:        t.Status,
			Amount:        t.Amount.InexactFloat64(),
			PaymentMethod: t.PaymentMethod,
		}
	}
	return res
}

func newDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	res := DashboardResponse{
		TotalUsers:           s.TotalUsers,
		TotalOrders:          s.TotalOrders,
		OrdersByStatus:       make(map[string]int64, len(s.OrdersByStatus)),
		TotalRevenue:         s.TotalRevenue.InexactFloat64(),
		TotalTransactions:    s.TotalTransactions,
		TransactionsByStatus: make(map[string]int64, len(s.TransactionsByStatus)),
		TotalPayments:        s.TotalPayments.InexactFloat64(),
		GeneratedAt:          s.GeneratedAt,
		Stale:                s.Stale,
	}
	for status, count := range s.OrdersByStatus {
		res.OrdersByStatus[string(status)] = count
	}
	for status, count := range s.TransactionsByStatus {
		res.TransactionsByStatus[string(status)] = count
	}
	return res
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
