package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/api/request"
	"github.com/mvermaat/stock-trade-tracker/internal/apperrors"
	"github.com/mvermaat/stock-trade-tracker/internal/model"
	"github.com/mvermaat/stock-trade-tracker/internal/repository"
)

// TradeService handles trade-related business logic operations.
type TradeService struct {
	tradeRepo   *repository.TradeRepository
	accountRepo *repository.AccountRepository
}

// NewTradeService creates a new TradeService with the provided repository dependencies.
func NewTradeService(
	tradeRepo *repository.TradeRepository,
	accountRepo *repository.AccountRepository,
) *TradeService {
	return &TradeService{
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
	}
}

// GetTrades retrieves the trade book, optionally filtered by account, in
// chronological order with account names attached.
func (s *TradeService) GetTrades(accountID string) ([]model.TradeResponse, error) {
	return s.tradeRepo.GetTradeResponses(accountID)
}

// loadTrades retrieves raw trade records in the accounting core's required
// order (date ascending, ID ascending).
func (s *TradeService) loadTrades(accountID string) ([]model.Trade, error) {
	return s.tradeRepo.GetTrades(accountID)
}

// GetTrade retrieves a single trade by its ID.
func (s *TradeService) GetTrade(tradeID int64) (model.Trade, error) {
	trade, found, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return model.Trade{}, err
	}
	if !found {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	return trade, nil
}

// CreateTrade validates the owning account, normalizes the instrument symbol
// to uppercase and records the trade. The trade value is derived from
// quantity and price by the model constructor, never taken from the request.
func (s *TradeService) CreateTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	tradeDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	_, found, err := s.accountRepo.GetAccount(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}
	if !found {
		return nil, apperrors.ErrAccountNotFound
	}

	trade := model.NewTrade(
		req.AccountID,
		tradeDate,
		strings.ToUpper(strings.TrimSpace(req.Instrument)),
		req.Action,
		req.Quantity,
		req.Price,
		req.Brokerage,
	)
	trade.Source = req.Source
	trade.OrderRef = req.OrderRef
	trade.Remarks = req.Remarks

	if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	return trade, nil
}

// UpdateTrade applies the provided fields to an existing trade. Quantity and
// price changes re-derive the trade value, keeping the stored derived field
// consistent by construction.
func (s *TradeService) UpdateTrade(ctx context.Context, tradeID int64, req request.UpdateTradeRequest) (*model.Trade, error) {
	trade, found, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrTradeNotFound
	}

	if req.AccountID != nil {
		_, found, err := s.accountRepo.GetAccount(*req.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify account: %w", err)
		}
		if !found {
			return nil, apperrors.ErrAccountNotFound
		}
		trade.AccountID = *req.AccountID
	}
	if req.Date != nil {
		tradeDate, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		trade.Date = tradeDate
	}
	if req.Instrument != nil {
		trade.Instrument = strings.ToUpper(strings.TrimSpace(*req.Instrument))
	}
	if req.Action != nil {
		trade.Action = *req.Action
	}
	if req.Quantity != nil {
		trade.Quantity = *req.Quantity
	}
	if req.Price != nil {
		trade.Price = *req.Price
	}
	if req.Brokerage != nil {
		trade.Brokerage = *req.Brokerage
	}
	if req.Source != nil {
		trade.Source = *req.Source
	}
	if req.OrderRef != nil {
		trade.OrderRef = *req.OrderRef
	}
	if req.Remarks != nil {
		trade.Remarks = *req.Remarks
	}

	trade.TradeValue = trade.Quantity * trade.Price

	affected, err := s.tradeRepo.UpdateTrade(ctx, &trade)
	if err != nil {
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}
	if affected == 0 {
		return nil, apperrors.ErrTradeNotFound
	}

	return &trade, nil
}

// DeleteTrade removes a trade. Derived analytics need no compensation: they
// are recomputed from the full remaining history on every read.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID int64) error {
	affected, err := s.tradeRepo.DeleteTrade(ctx, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}
