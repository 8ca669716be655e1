package reconcile

import (
	"slices"
	"strings"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

// Match отбирает транзакции, ExternalID которых содержит хотя бы одного кандидата как подстроку
// (без учета границ, с учетом регистра - как LIKE '%id%' в хранилище). Повторы по ID отбрасываются.
// Результат отсортирован по CreatedAt по убыванию, при равенстве - по ID по возрастанию.
//
// Совпадение по подстроке без якорей может связывать лишние транзакции для коротких идентификаторов.
func Match(candidates []string, transactions []domain.Transaction) []domain.Transaction {
	needles := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			needles = append(needles, c)
		}
	}
	if len(needles) == 0 || len(transactions) == 0 {
		return []domain.Transaction{}
	}

	seen := make(map[string]struct{}, len(transactions))
	matched := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if _, dup := seen[tx.ID]; dup {
			continue
		}
		if !containsAny(tx.ExternalID, needles) {
			continue
		}
		seen[tx.ID] = struct{}{}
		matched = append(matched, tx)
	}

	slices.SortStableFunc(matched, func(a, b domain.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return matched
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
