package reconcile

import (
	"strings"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

// CandidateSet упорядоченное множество строк: повторы и пустые значения отбрасываются,
// порядок первого добавления сохраняется. Нулевое значение готово к использованию.
type CandidateSet struct {
	values []string
	seen   map[string]struct{}
}

func (s *CandidateSet) Add(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.values = append(s.values, v)
	}
}

func (s *CandidateSet) Len() int {
	return len(s.values)
}

// Values возвращает копию значений в порядке добавления.
func (s *CandidateSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// ExtractCandidates извлекает идентификаторы-кандидаты из метаданных заказа. Заказ без метаданных или
// с неразборными метаданными дает пустой результат.
func ExtractCandidates(order domain.Order) []string {
	return ParseMetadata(order.Metadata).Candidates()
}

// PoolCandidates объединяет кандидатов по всем заказам юзера в одно множество. Для заказов
// с неразборными метаданными вызывается onUnparseable (может быть nil), такие заказы ничего не добавляют,
// но обработка соседних заказов продолжается.
func PoolCandidates(orders []domain.Order, onUnparseable func(order domain.Order, err error)) *CandidateSet {
	set := new(CandidateSet)
	for _, order := range orders {
		md := ParseMetadata(order.Metadata)
		if md.Kind == MetadataUnparseable {
			if onUnparseable != nil {
				onUnparseable(order, md.Err)
			}
			continue
		}
		set.Add(md.Candidates()...)
	}
	return set
}
