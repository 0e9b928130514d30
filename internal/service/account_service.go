package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mvermaat/stock-trade-tracker/internal/api/request"
	"github.com/mvermaat/stock-trade-tracker/internal/apperrors"
	"github.com/mvermaat/stock-trade-tracker/internal/model"
	"github.com/mvermaat/stock-trade-tracker/internal/repository"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all accounts, optionally including archived ones.
func (s *AccountService) GetAccounts(includeArchived bool) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(includeArchived)
}

// GetAccount retrieves a single account by ID.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	account, found, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return model.Account{}, err
	}
	if !found {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	return account, nil
}

// CreateAccount creates a new account with a generated UUID.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.Account, error) {
	account := &model.Account{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Broker:      req.Broker,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccount applies the provided fields to an existing account.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req request.UpdateAccountRequest) (*model.Account, error) {
	account, found, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrAccountNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Broker != nil {
		account.Broker = *req.Broker
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsArchived != nil {
		account.IsArchived = *req.IsArchived
	}

	affected, err := s.accountRepo.UpdateAccount(ctx, &account)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	return &account, nil
}

// DeleteAccount removes an account. Accounts with recorded trades are
// protected; archive them instead of deleting history.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	count, err := s.accountRepo.CountTrades(accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrAccountInUse
	}

	affected, err := s.accountRepo.DeleteAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
