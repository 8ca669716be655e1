package pgrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const userColumns = `id, COALESCE(name, ''), email, COALESCE(phone, ''), role, created_at, updated_at`

const userFilterWhere = `
WHERE (@search::text = '' OR name ILIKE @pattern OR email ILIKE @pattern)
  AND (@role::text = '' OR role = @role)`

const usersListQuery = `SELECT ` + userColumns + ` FROM users` + userFilterWhere + `
ORDER BY created_at DESC, id
LIMIT @limit OFFSET @offset`

const usersCountQuery = `SELECT count(*) FROM users` + userFilterWhere

const userFindByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

func filterArgs(filter repoargs.UserFilter) pgx.NamedArgs {
	search := filter.NormalizedSearch()
	return pgx.NamedArgs{
		"search":  search,
		"pattern": containsPattern(search),
		"role":    filter.NormalizedRole(),
	}
}

// List возвращает страницу юзеров по фильтру, отсортированную по дате создания по убыванию.
func (u *UserRepository) List(
	ctx context.Context,
	filter repoargs.UserFilter,
	limit, offset uint,
) ([]domain.User, error) {
	safeLimit, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "converting limit to int32")
	}
	safeOffset, offsetErr := safeConvertUintToInt32(offset)
	if offsetErr != nil {
		return nil, convertErr(offsetErr, "converting offset to int32")
	}

	args := filterArgs(filter)
	args["limit"] = safeLimit
	args["offset"] = safeOffset

	rows, err := u.conn.Query(ctx, usersListQuery, args)
	if err != nil {
		return nil, convertErr(err, "listing users")
	}
	users, collectErr := pgx.CollectRows(rows, scanUser)
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning users")
	}
	return users, nil
}

// Count возвращает количество юзеров, подходящих под фильтр.
func (u *UserRepository) Count(ctx context.Context, filter repoargs.UserFilter) (int64, error) {
	var total int64
	if err := u.conn.QueryRow(ctx, usersCountQuery, filterArgs(filter)).Scan(&total); err != nil {
		return 0, convertErr(err, "counting users")
	}
	return total, nil
}

// FindByID ищет юзера по id. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown или domain.ErrStoreTimeout.
func (u *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	rows, err := u.conn.Query(ctx, userFindByIDQuery, id)
	if err != nil {
		return nil, convertErr(err, "finding user by id %s", id)
	}
	user, collectErr := pgx.CollectExactlyOneRow(rows, scanUser)
	if collectErr != nil {
		return nil, convertErr(collectErr, "finding user by id %s", id)
	}
	return &user, nil
}

func scanUser(row pgx.CollectableRow) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err //nolint:wrapcheck
}
