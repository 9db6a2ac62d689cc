package repositories

import (
	"context"
	"fmt"
	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/domain/entities"
	"skillgraphpoc/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewAccountRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{readPool: readPool, writePool: writePool}
}

// CreateAccount insere a conta nova e devolve o id gerado. Username
// duplicado (case-insensitive, garantido pelo índice único em
// LOWER(username)) vira domain.ErrUsernameTaken.
func (ar *AccountRepository) CreateAccount(ctx context.Context, username string, passwordHash string) (int64, error) {
	query := `INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`

	var accountID int64
	err := ar.writePool.QueryRow(ctx, query, username, passwordHash).Scan(&accountID)
	if postgres.IsUniqueViolation(err) {
		return 0, domain.ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("AccountRepository.CreateAccount - insert failed: %w", err)
	}

	return accountID, nil
}

// FindByUsername busca por match exato case-insensitive. Sem match devolve
// (nil, nil); quem decide se isso é erro é o chamador.
func (ar *AccountRepository) FindByUsername(ctx context.Context, username string) (*entities.Account, error) {
	query := `
		SELECT id, username, password, name, meta, company, avatar
		FROM users WHERE LOWER(username) = LOWER($1)`

	var account entities.Account
	var password, name, meta, company, avatar pgtype.Text

	err := ar.readPool.QueryRow(ctx, query, username).Scan(
		&account.ID, &account.Username, &password, &name, &meta, &company, &avatar,
	)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("AccountRepository.FindByUsername - query failed: %w", err)
	}

	account.Password = password.String
	account.Name = name.String
	account.Meta = meta.String
	account.Company = company.String
	account.Avatar = avatar.String

	return &account, nil
}
