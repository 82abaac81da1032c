package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/domain"
)

// TransactionRepository handles the closed-transaction log.
// Transactions live in ledger.db and form an immutable audit trail: rows
// are inserted when a position closes and never updated or deleted.
type TransactionRepository struct {
	ledgerDB *sql.DB
	log      zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(ledgerDB *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		ledgerDB: ledgerDB,
		log:      log.With().Str("repo", "transaction").Logger(),
	}
}

// Create appends a closed transaction to the log. At most one transaction
// exists per original asset; when one is already recorded the insert is
// skipped and Create returns false.
func (r *TransactionRepository) Create(tx domain.ClosedTransaction) (bool, error) {
	query := `INSERT OR IGNORE INTO transactions (
		id, user_id, original_asset_id, symbol, name, type, quantity,
		purchase_price, sale_price, total_cost, total_revenue,
		profit_loss, profit_loss_percent, purchase_date, sale_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.ledgerDB.Exec(
		query,
		tx.ID,
		tx.UserID,
		tx.AssetID,
		tx.Symbol,
		tx.Name,
		tx.AssetType,
		tx.Quantity,
		tx.PurchasePrice,
		tx.SalePrice,
		tx.TotalCost,
		tx.TotalRevenue,
		tx.RealizedPnL,
		tx.RealizedPnLPercent,
		tx.PurchaseDate.Unix(),
		tx.SaleDate.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert transaction: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return inserted > 0, nil
}

// GetByAssetID returns the transaction recorded for an original asset.
func (r *TransactionRepository) GetByAssetID(assetID string) (domain.ClosedTransaction, error) {
	query := `SELECT id, user_id, original_asset_id, symbol, name, type, quantity,
		purchase_price, sale_price, total_cost, total_revenue,
		profit_loss, profit_loss_percent, purchase_date, sale_date
		FROM transactions WHERE original_asset_id = ?`

	var tx domain.ClosedTransaction
	var purchaseDate, saleDate int64

	err := r.ledgerDB.QueryRow(query, assetID).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.AssetID,
		&tx.Symbol,
		&tx.Name,
		&tx.AssetType,
		&tx.Quantity,
		&tx.PurchasePrice,
		&tx.SalePrice,
		&tx.TotalCost,
		&tx.TotalRevenue,
		&tx.RealizedPnL,
		&tx.RealizedPnLPercent,
		&purchaseDate,
		&saleDate,
	)
	if err != nil {
		return domain.ClosedTransaction{}, fmt.Errorf("failed to load transaction for asset %s: %w", assetID, err)
	}

	tx.PurchaseDate = time.Unix(purchaseDate, 0).UTC()
	tx.SaleDate = time.Unix(saleDate, 0).UTC()

	return tx, nil
}

// GetAllForUser returns the closed-transaction log for a user,
// most recent sale first.
func (r *TransactionRepository) GetAllForUser(userID string) ([]domain.ClosedTransaction, error) {
	query := `SELECT id, user_id, original_asset_id, symbol, name, type, quantity,
		purchase_price, sale_price, total_cost, total_revenue,
		profit_loss, profit_loss_percent, purchase_date, sale_date
		FROM transactions WHERE user_id = ? ORDER BY sale_date DESC`

	rows, err := r.ledgerDB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.ClosedTransaction
	for rows.Next() {
		var tx domain.ClosedTransaction
		var purchaseDate, saleDate int64

		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.AssetID,
			&tx.Symbol,
			&tx.Name,
			&tx.AssetType,
			&tx.Quantity,
			&tx.PurchasePrice,
			&tx.SalePrice,
			&tx.TotalCost,
			&tx.TotalRevenue,
			&tx.RealizedPnL,
			&tx.RealizedPnLPercent,
			&purchaseDate,
			&saleDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.PurchaseDate = time.Unix(purchaseDate, 0).UTC()
		tx.SaleDate = time.Unix(saleDate, 0).UTC()
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
