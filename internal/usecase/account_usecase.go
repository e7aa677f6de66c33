package usecase

import (
	"context"
	"time"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// AccountUseCase handles chart-of-accounts operations.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo, idGen: idGen}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code string
	Name string
	Type domain.AccountType
}

// CreateAccount creates a new, active, non-system account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountCode(input.Code); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountCode
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Code:      input.Code,
		Name:      input.Name,
		Type:      input.Type,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// DeactivateAccount soft-deactivates an account. System-protected accounts
// (suspense, bank, control accounts) are rejected outright.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := account.CanDeactivate(); err != nil {
		return err
	}
	return uc.accountRepo.SetActive(ctx, id, false, time.Now().UTC())
}
