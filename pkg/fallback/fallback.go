// Package fallback реализует цепочку стратегий получения значения: стратегии пробуются по порядку
// до первой успешной, ошибки всех неудачных попыток объединяются.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var ErrNoStrategies = errors.New("[fallback] no strategies")

type StrategyFunc[T any] func(ctx context.Context) (T, error)

type Strategy[T any] struct {
	Name string
	Fn   StrategyFunc[T]
}

type Chain[T any] struct {
	strategies []Strategy[T]
}

func New[T any](strategies ...Strategy[T]) *Chain[T] {
	return &Chain[T]{strategies: strategies}
}

// Then добавляет стратегию в конец цепочки.
func (c *Chain[T]) Then(name string, fn StrategyFunc[T]) *Chain[T] {
	c.strategies = append(c.strategies, Strategy[T]{Name: name, Fn: fn})
	return c
}

// Run выполняет стратегии по порядку и возвращает результат первой успешной вместе с ее именем.
// Если все стратегии вернули ошибку, возвращается *multierror.Error со всеми ошибками. Отмена ctx
// прерывает цепочку.
func (c *Chain[T]) Run(ctx context.Context) (T, string, error) {
	var zero T
	if len(c.strategies) == 0 {
		return zero, "", ErrNoStrategies
	}

	var result *multierror.Error
	for _, s := range c.strategies {
		if ctxErr := ctx.Err(); ctxErr != nil {
			result = multierror.Append(result, fmt.Errorf("strategy %s: %w", s.Name, ctxErr))
			break
		}
		v, err := s.Fn(ctx)
		if err == nil {
			return v, s.Name, nil
		}
		result = multierror.Append(result, fmt.Errorf("strategy %s: %w", s.Name, err))
	}
	return zero, "", result.ErrorOrNil()
}
