package repoargs

import "github.com/shopspring/decimal"

// StatusAggregation количество и сумма записей с одним сырым (не нормализованным) статусом.
type StatusAggregation struct {
	Status string
	Count  int64
	Amount decimal.Decimal
}
