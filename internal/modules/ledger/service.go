package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/domain"
)

// Service orchestrates ledger operations: opening, deleting and closing
// positions, and overlaying live prices onto position snapshots.
//
// Mutations are all-or-nothing per call: validation and existence checks run
// before any write, so a failed call leaves both the open set and the
// transaction log untouched. Callers are expected to invoke mutations one at
// a time; the service holds no lock of its own.
type Service struct {
	positions    *PositionRepository
	transactions *TransactionRepository
	clock        domain.Clock
	log          zerolog.Logger
}

// NewService creates a new ledger service
func NewService(
	positions *PositionRepository,
	transactions *TransactionRepository,
	clock domain.Clock,
	log zerolog.Logger,
) *Service {
	return &Service{
		positions:    positions,
		transactions: transactions,
		clock:        clock,
		log:          log.With().Str("service", "ledger").Logger(),
	}
}

// AddPosition creates a new open position. The symbol is normalized to
// uppercase; quantity must be a positive finite number and unitPrice a
// non-negative finite number. Each call creates its own record even when an
// open position with the same symbol already exists.
func (s *Service) AddPosition(userID, symbol, name, assetType string, quantity, unitPrice float64) (domain.Position, error) {
	if !isFinite(quantity) || quantity <= 0 {
		return domain.Position{}, domain.NewValidationError("quantity", "must be a positive number")
	}
	if !isFinite(unitPrice) || unitPrice < 0 {
		return domain.Position{}, domain.NewValidationError("price", "must be a non-negative number")
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.Position{}, domain.NewValidationError("symbol", "must not be empty")
	}
	if assetType == "" {
		assetType = "Stock"
	}

	pos := domain.Position{
		ID:            uuid.NewString(),
		UserID:        userID,
		Symbol:        symbol,
		Name:          name,
		AssetType:     assetType,
		Quantity:      quantity,
		PurchasePrice: unitPrice,
		CurrentPrice:  unitPrice, // updated on next price refresh
		CreatedAt:     s.clock.Now(),
	}

	if err := s.positions.Create(pos); err != nil {
		return domain.Position{}, fmt.Errorf("failed to add position: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("symbol", pos.Symbol).
		Float64("quantity", quantity).
		Float64("price", unitPrice).
		Msg("Position opened")

	return pos, nil
}

// RemovePosition deletes a position from the open set without leaving a
// financial trace. Returns domain.ErrPositionNotFound for unknown ids.
func (s *Service) RemovePosition(userID, id string) error {
	if err := s.positions.Delete(userID, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Str("position_id", id).Msg("Position removed")
	return nil
}

// ClosePosition sells an open position at salePrice: it appends an immutable
// ClosedTransaction to the log and removes the position from the open set.
// The purchase price is copied from the position at close time.
func (s *Service) ClosePosition(userID, id string, salePrice float64) (domain.ClosedTransaction, error) {
	if !isFinite(salePrice) || salePrice < 0 {
		return domain.ClosedTransaction{}, domain.NewValidationError("sale_price", "must be a non-negative number")
	}

	pos, err := s.positions.GetByID(userID, id)
	if err != nil {
		return domain.ClosedTransaction{}, err
	}

	realized := (salePrice - pos.PurchasePrice) * pos.Quantity
	realizedPct := 0.0
	if pos.PurchasePrice > 0 {
		realizedPct = (salePrice - pos.PurchasePrice) / pos.PurchasePrice * 100
	}

	tx := domain.ClosedTransaction{
		ID:                 uuid.NewString(),
		UserID:             userID,
		AssetID:            pos.ID,
		Symbol:             pos.Symbol,
		Name:               pos.Name,
		AssetType:          pos.AssetType,
		Quantity:           pos.Quantity,
		PurchasePrice:      pos.PurchasePrice,
		SalePrice:          salePrice,
		TotalCost:          pos.Quantity * pos.PurchasePrice,
		TotalRevenue:       pos.Quantity * salePrice,
		RealizedPnL:        realized,
		RealizedPnLPercent: realizedPct,
		PurchaseDate:       pos.CreatedAt,
		SaleDate:           s.clock.Now(),
	}

	inserted, err := s.transactions.Create(tx)
	if err != nil {
		return domain.ClosedTransaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}
	if !inserted {
		// An earlier close recorded the transaction but failed to remove
		// the position. Finish that close with the recorded figures.
		tx, err = s.transactions.GetByAssetID(pos.ID)
		if err != nil {
			return domain.ClosedTransaction{}, err
		}
	}

	if err := s.positions.Delete(userID, id); err != nil {
		// The transaction is recorded but the position survived; the
		// caller can retry and the unique asset index keeps the log at
		// one row.
		return domain.ClosedTransaction{}, fmt.Errorf("failed to remove closed position %s: %w", id, err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("symbol", tx.Symbol).
		Float64("sale_price", salePrice).
		Float64("profit_loss", realized).
		Msg("Position closed")

	return tx, nil
}

// OpenPositions returns the user's open-position snapshot.
// CurrentPrice defaults to the purchase price; apply RefreshPrices with a
// live feed before valuing the snapshot.
func (s *Service) OpenPositions(userID string) ([]domain.Position, error) {
	return s.positions.GetAllForUser(userID)
}

// Transactions returns the user's closed-transaction log, newest sale first.
func (s *Service) Transactions(userID string) ([]domain.ClosedTransaction, error) {
	return s.transactions.GetAllForUser(userID)
}

// RefreshPrices overlays live prices onto a position snapshot. Symbols
// missing from the feed (or mapped to nil) keep the purchase price as a
// stale-but-defined valuation; identity fields are never touched. The
// operation is pure and idempotent - the input slice is not modified.
func RefreshPrices(positions []domain.Position, feed map[string]*float64) []domain.Position {
	if len(positions) == 0 {
		return nil
	}

	refreshed := make([]domain.Position, len(positions))
	for i, pos := range positions {
		if price, ok := feed[pos.Symbol]; ok && price != nil {
			pos.CurrentPrice = *price
		} else {
			pos.CurrentPrice = pos.PurchasePrice
		}
		refreshed[i] = pos
	}

	return refreshed
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
