// Package ledger maintains the open-position set and the closed-transaction
// log: the accounting core of the dashboard.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/domain"
)

// PositionRepository handles open-position database operations.
// Open positions live in portfolio.db (assets table); each row is one
// purchase event, never merged by symbol.
type PositionRepository struct {
	portfolioDB *sql.DB
	log         zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(portfolioDB *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		portfolioDB: portfolioDB,
		log:         log.With().Str("repo", "position").Logger(),
	}
}

// Create inserts a new open position.
func (r *PositionRepository) Create(pos domain.Position) error {
	query := `INSERT INTO assets (id, user_id, symbol, name, type, amount, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.portfolioDB.Exec(
		query,
		pos.ID,
		pos.UserID,
		pos.Symbol,
		pos.Name,
		pos.AssetType,
		pos.Quantity,
		pos.PurchasePrice,
		pos.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	return nil
}

// GetAllForUser returns all open positions for a user, newest first.
// CurrentPrice starts out equal to PurchasePrice; callers overlay live
// prices via RefreshPrices before valuation.
func (r *PositionRepository) GetAllForUser(userID string) ([]domain.Position, error) {
	query := `SELECT id, user_id, symbol, name, type, amount, price, created_at
		FROM assets WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.portfolioDB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetByID returns a single open position.
// Returns domain.ErrPositionNotFound if the id is absent from the open set.
func (r *PositionRepository) GetByID(userID, id string) (domain.Position, error) {
	query := `SELECT id, user_id, symbol, name, type, amount, price, created_at
		FROM assets WHERE id = ? AND user_id = ?`

	row := r.portfolioDB.QueryRow(query, id, userID)
	pos, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return domain.Position{}, domain.ErrPositionNotFound
	}
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to get position %s: %w", id, err)
	}

	return pos, nil
}

// Delete removes a position from the open set.
// Returns domain.ErrPositionNotFound if nothing was deleted.
func (r *PositionRepository) Delete(userID, id string) error {
	result, err := r.portfolioDB.Exec(`DELETE FROM assets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPositionNotFound
	}

	return nil
}

// DistinctSymbols returns every symbol that appears in any user's open
// positions. Used by the price refresh job to warm the price cache.
func (r *PositionRepository) DistinctSymbols() ([]string, error) {
	rows, err := r.portfolioDB.Query(`SELECT DISTINCT symbol FROM assets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanPosition
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPosition(s scanner) (domain.Position, error) {
	var pos domain.Position
	var createdAt int64

	err := s.Scan(
		&pos.ID,
		&pos.UserID,
		&pos.Symbol,
		&pos.Name,
		&pos.AssetType,
		&pos.Quantity,
		&pos.PurchasePrice,
		&createdAt,
	)
	if err != nil {
		return domain.Position{}, err
	}

	pos.CreatedAt = time.Unix(createdAt, 0).UTC()
	// Stale-but-defined valuation until a live price is applied
	pos.CurrentPrice = pos.PurchasePrice

	return pos, nil
}
