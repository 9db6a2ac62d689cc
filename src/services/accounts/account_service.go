package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/domain/entities"
	"skillgraphpoc/src/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Apenas e-mails institucionais podem se registrar.
var allowedUsernamePattern = regexp.MustCompile(`(?i)^01fe.*@kletech\.ac\.in$`)

var (
	ErrMissingCredentials = errors.New("username & password required")
	ErrUsernameNotAllowed = errors.New("email must start with 01fe and end with @kletech.ac.in")
)

type AccountService struct {
	accountRepository *repositories.AccountRepository
}

func NewAccountService(accountRepository *repositories.AccountRepository) *AccountService {
	return &AccountService{accountRepository: accountRepository}
}

// Register valida o username contra a allow-list, garante unicidade
// case-insensitive e grava o hash bcrypt da senha.
func (as *AccountService) Register(ctx context.Context, username string, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrMissingCredentials
	}

	if !allowedUsernamePattern.MatchString(username) {
		return 0, ErrUsernameNotAllowed
	}

	existing, err := as.accountRepository.FindByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("AccountService.Register - lookup failed: %w", err)
	}
	if existing != nil {
		return 0, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return 0, fmt.Errorf("AccountService.Register - failed to hash password: %w", err)
	}

	accountID, err := as.accountRepository.CreateAccount(ctx, username, string(hash))
	if err != nil {
		return 0, fmt.Errorf("AccountService.Register - create failed: %w", err)
	}

	return accountID, nil
}

// Authenticate confere username e senha. Username desconhecido e senha
// errada devolvem o mesmo erro; nada de enumeração de contas.
func (as *AccountService) Authenticate(ctx context.Context, username string, password string) (*entities.Account, error) {
	account, err := as.accountRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("AccountService.Authenticate - lookup failed: %w", err)
	}
	if account == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.Password = ""
	return account, nil
}
