package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
)

// indexStatements are applied in order; each must be idempotent
var indexStatements = []struct {
	name string
	sql  string
}{
	{
		// One transaction per provider token; pending rows without a token are exempt
		name: "idx_transactions_authority",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_authority
			ON transactions (authority) WHERE authority IS NOT NULL`,
	},
	{
		name: "idx_transactions_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_user_created
			ON transactions (user_id, created_at DESC)`,
	},
	{
		name: "idx_transactions_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_pending
			ON transactions (created_at) WHERE payment_status = 'pending'`,
	},
	{
		name: "chk_users_credit_balance_non_negative",
		sql: `DO $$ BEGIN
			ALTER TABLE users ADD CONSTRAINT chk_users_credit_balance_non_negative CHECK (credit_balance >= 0);
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$`,
	},
}

// IndexManager manages PostgreSQL-specific indexes and constraints
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes applies every index statement
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating PostgreSQL indexes", map[string]any{
		"count": len(indexStatements),
	})

	for _, stmt := range indexStatements {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}
	return nil
}
