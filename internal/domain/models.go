package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Phone     string
	Role      string
}

// Order заказ из хранилища заказов. Metadata - сырое содержимое json колонки, форма не гарантирована.
type Order struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UserID    uuid.UUID
	Status    OrderStatusType
	Amount    decimal.NullDecimal
	ServiceID string
	Metadata  []byte
}

// Transaction платежная транзакция из хранилища платежей. Внешнего ключа на Order или User нет,
// связь восстанавливается по ExternalID.
type Transaction struct {
	ID            string
	CreatedAt     time.Time
	ExternalID    string
	Status        TransactionStatusType
	Amount        decimal.NullDecimal
	PaymentMethod string
}

// AmountOrZero возвращает сумму заказа, null считается нулем.
func (o Order) AmountOrZero() decimal.Decimal {
	if !o.Amount.Valid {
		return decimal.Zero
	}
	return o.Amount.Decimal
}

// AmountOrZero возвращает сумму транзакции, null считается нулем.
func (t Transaction) AmountOrZero() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	return t.Amount.Decimal
}
