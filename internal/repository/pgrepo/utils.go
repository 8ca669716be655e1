package pgrepo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern возвращает шаблон LIKE '%value%', в котором спецсимволы value экранированы.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// containsPatterns строит шаблоны для непустых значений.
func containsPatterns(values []string) []string {
	patterns := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			patterns = append(patterns, containsPattern(v))
		}
	}
	return patterns
}

// safeConvertUintToInt32 безопасно конвертирует uint в int32. В случае выхода значения за рамки диапазона
// выбрасывает ошибку.
func safeConvertUintToInt32(val uint) (int32, error) {
	if val > uint(math.MaxInt32) {
		return 0, fmt.Errorf("value is out of range: %d", val)
	}
	return int32(val), nil
}

// jitter возвращает число, рассыпавшееся относительно value на случайный процент в пределах
// [1-minPercent, 1+maxPercent].
// Например, если minPercent=0.15, maxPercent=0.15, получим диапазон [0.85*value, 1.15*value].
//
// minPercent и maxPercent должны быть >= 0 (0.1 = 10%). Если указано иное, значение выставится в 0.15.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = 0.15
		maxPercent = 0.15
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}
