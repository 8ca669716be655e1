package domain

type OrderStatusType string

const (
	OrderStatusPending    OrderStatusType = "pending"
	OrderStatusProcessing OrderStatusType = "processing"
	OrderStatusCompleted  OrderStatusType = "completed"
	OrderStatusFailed     OrderStatusType = "failed"
	OrderStatusCanceled   OrderStatusType = "canceled"
	OrderStatusPartial    OrderStatusType = "partial"
	OrderStatusUnknown    OrderStatusType = "unknown"
)

type TransactionStatusType string

const (
	TransactionStatusApproved  TransactionStatusType = "approved"
	TransactionStatusCompleted TransactionStatusType = "completed"
	TransactionStatusPending   TransactionStatusType = "pending"
	TransactionStatusRejected  TransactionStatusType = "rejected"
	TransactionStatusUnknown   TransactionStatusType = "unknown"
)

// IsSuccessful true для статусов, суммы которых попадают в total_payments.
func (s TransactionStatusType) IsSuccessful() bool {
	return s == TransactionStatusApproved || s == TransactionStatusCompleted
}

const (
	PaymentMethodCard     = "card"
	PaymentMethodPix      = "pix"
	PaymentMethodBoleto   = "boleto"
	PaymentMethodTransfer = "transfer"
	PaymentMethodUnknown  = "unknown"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSupport  = "support"
	RoleCustomer = "customer"

	// RoleAll значение фильтра, отключающее фильтрацию по роли.
	RoleAll = "all"
)

// Источники данных, которые могут деградировать при расчете метрик.
const (
	DegradedOrders       = "orders"
	DegradedTransactions = "transactions"
)
