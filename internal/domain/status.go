package domain

import "strings"

var orderStatusSynonyms = map[string]OrderStatusType{
	"pending":      OrderStatusPending,
	"pendente":     OrderStatusPending,
	"waiting":      OrderStatusPending,
	"aguardando":   OrderStatusPending,
	"new":          OrderStatusPending,
	"processing":   OrderStatusProcessing,
	"in_progress":  OrderStatusProcessing,
	"processando":  OrderStatusProcessing,
	"em_andamento": OrderStatusProcessing,
	"completed":    OrderStatusCompleted,
	"complete":     OrderStatusCompleted,
	"paid":         OrderStatusCompleted,
	"success":      OrderStatusCompleted,
	"done":         OrderStatusCompleted,
	"approved":     OrderStatusCompleted,
	"concluido":    OrderStatusCompleted,
	"entregue":     OrderStatusCompleted,
	"failed":       OrderStatusFailed,
	"error":        OrderStatusFailed,
	"rejected":     OrderStatusFailed,
	"falhou":       OrderStatusFailed,
	"canceled":     OrderStatusCanceled,
	"cancelled":    OrderStatusCanceled,
	"cancelado":    OrderStatusCanceled,
	"partial":      OrderStatusPartial,
	"parcial":      OrderStatusPartial,
}

var transactionStatusSynonyms = map[string]TransactionStatusType{
	"approved":   TransactionStatusApproved,
	"paid":       TransactionStatusApproved,
	"success":    TransactionStatusApproved,
	"authorized": TransactionStatusApproved,
	"aprovado":   TransactionStatusApproved,
	"completed":  TransactionStatusCompleted,
	"settled":    TransactionStatusCompleted,
	"concluido":  TransactionStatusCompleted,
	"pending":    TransactionStatusPending,
	"waiting":    TransactionStatusPending,
	"in_process": TransactionStatusPending,
	"pendente":   TransactionStatusPending,
	"rejected":   TransactionStatusRejected,
	"declined":   TransactionStatusRejected,
	"refused":    TransactionStatusRejected,
	"failed":     TransactionStatusRejected,
	"cancelled":  TransactionStatusRejected,
	"canceled":   TransactionStatusRejected,
	"recusado":   TransactionStatusRejected,
}

var paymentMethodSynonyms = map[string]string{
	"card":          PaymentMethodCard,
	"credit_card":   PaymentMethodCard,
	"debit_card":    PaymentMethodCard,
	"cartao":        PaymentMethodCard,
	"pix":           PaymentMethodPix,
	"boleto":        PaymentMethodBoleto,
	"transfer":      PaymentMethodTransfer,
	"bank_transfer": PaymentMethodTransfer,
	"ted":           PaymentMethodTransfer,
	"doc":           PaymentMethodTransfer,
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ReplaceAll(key, " ", "_")
}

// NormalizeOrderStatus приводит статус заказа конкретного хранилища к общему набору.
// Нераспознанные значения становятся OrderStatusUnknown.
func NormalizeOrderStatus(raw string) OrderStatusType {
	if status, ok := orderStatusSynonyms[normalizeKey(raw)]; ok {
		return status
	}
	return OrderStatusUnknown
}

// NormalizeTransactionStatus приводит статус транзакции к общему набору.
func NormalizeTransactionStatus(raw string) TransactionStatusType {
	if status, ok := transactionStatusSynonyms[normalizeKey(raw)]; ok {
		return status
	}
	return TransactionStatusUnknown
}

// NormalizePaymentMethod приводит способ оплаты к нижнему регистру и общему словарю. Пустое значение
// становится PaymentMethodUnknown, неизвестные значения возвращаются как есть.
func NormalizePaymentMethod(raw string) string {
	key := normalizeKey(raw)
	if key == "" {
		return PaymentMethodUnknown
	}
	if method, ok := paymentMethodSynonyms[key]; ok {
		return method
	}
	return key
}

// IsKnownRole проверяет значение фильтра роли. Пустая строка и RoleAll допустимы.
func IsKnownRole(role string) bool {
	switch role {
	case "", RoleAll, RoleAdmin, RoleManager, RoleSupport, RoleCustomer:
		return true
	default:
		return false
	}
}
