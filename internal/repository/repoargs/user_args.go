package repoargs

import (
	"strings"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

// UserFilter фильтр списка юзеров. Search ищется подстрокой без учета регистра в имени и email,
// Role сравнивается на равенство. Пустые значения и domain.RoleAll фильтр не накладывают.
type UserFilter struct {
	Search string
	Role   string
}

// NormalizedSearch строка поиска без пробелов по краям.
func (f UserFilter) NormalizedSearch() string {
	return strings.TrimSpace(f.Search)
}

// NormalizedRole роль для сравнения или пустая строка, если фильтра по роли нет.
func (f UserFilter) NormalizedRole() string {
	role := strings.ToLower(strings.TrimSpace(f.Role))
	if role == domain.RoleAll {
		return ""
	}
	return role
}
