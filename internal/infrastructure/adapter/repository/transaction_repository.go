package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(txn *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:              txn.ID,
		UserID:          txn.UserID,
		Amount:          txn.Amount,
		TransactionType: string(txn.Type),
		PaymentStatus:   string(txn.Status),
		Gateway:         txn.Gateway,
		Authority:       txn.Authority,
		ReferenceID:     txn.ReferenceID,
		Description:     txn.Description,
		CallbackURL:     txn.CallbackURL,
		Meta:            toJSON(txn.Meta),
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	var meta json.RawMessage
	if len(m.Meta) > 0 {
		meta = json.RawMessage(m.Meta)
	}
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.TransactionType),
		Status:      entity.PaymentStatus(m.PaymentStatus),
		Gateway:     m.Gateway,
		Authority:   m.Authority,
		ReferenceID: m.ReferenceID,
		Description: m.Description,
		CallbackURL: m.CallbackURL,
		Meta:        meta,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	errorType := r.errorClassifier.Classify(err)
	logFields := map[string]any{
		"operation":  operation,
		"error":      err.Error(),
		"error_type": string(errorType),
	}
	for k, v := range fields {
		logFields[k] = v
	}

	switch errorType {
	case DuplicateKeyError:
		r.logger.Warn("Authority already bound to another transaction", logFields)
		return errs.ErrDuplicateAuthority
	case ForeignKeyError:
		r.logger.Warn("Transaction references a missing user", logFields)
		return errs.ErrUserNotFound
	case RangeError:
		r.logger.Warn("Transaction amount does not fit the ledger", logFields)
		return fmt.Errorf("%w: %v", errs.ErrAmountOutOfRange, err)
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
	return fmt.Errorf("%w: %w", errs.ErrDatabaseConnection, err)
}

// Create saves a new transaction and copies the generated ID back to the entity
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	transactionModel := r.entityToModel(txn)
	transactionModel.ID = 0

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&transactionModel).Error; err != nil {
		return r.handleDatabaseError("creating transaction", err, map[string]any{
			"user_id": txn.UserID,
			"gateway": txn.Gateway,
		})
	}

	txn.ID = transactionModel.ID
	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        txn.UserID,
		"gateway":        txn.Gateway,
		"status":         string(txn.Status),
	})
	return nil
}

// SetAuthority binds the provider token once; a row that already has one is left untouched
func (r *TransactionRepository) SetAuthority(ctx context.Context, id uint64, authority string) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND authority IS NULL", id).
		Updates(map[string]any{
			"authority":  authority,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("setting authority", result.Error, map[string]any{
			"transaction_id": id,
			"authority":      authority,
		})
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByID retrieves a transaction by its primary key
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	if err := r.db.WithContext(ctx).First(&transactionModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting transaction", err, map[string]any{
			"transaction_id": id,
		})
	}
	return r.modelToEntity(&transactionModel), nil
}

// GetByAuthority retrieves a transaction by its provider token
func (r *TransactionRepository) GetByAuthority(ctx context.Context, authority string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	err := r.db.WithContext(ctx).
		Where("authority = ?", authority).
		First(&transactionModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting transaction by authority", err, map[string]any{
			"authority": authority,
		})
	}
	return r.modelToEntity(&transactionModel), nil
}

// GetByAuthorityForUpdate retrieves a transaction with SELECT ... FOR UPDATE
func (r *TransactionRepository) GetByAuthorityForUpdate(ctx context.Context, authority string) (*entity.Transaction, error) {
	if !inTransaction(r.db) {
		return nil, errs.ErrNoActiveTransaction
	}

	var transactionModel model.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("authority = ?", authority).
		First(&transactionModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking transaction", err, map[string]any{
			"authority": authority,
		})
	}
	return r.modelToEntity(&transactionModel), nil
}

// Update persists the mutable columns of a transaction
func (r *TransactionRepository) Update(ctx context.Context, txn *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]any{
			"payment_status": string(txn.Status),
			"reference_id":   txn.ReferenceID,
			"meta":           toJSON(txn.Meta),
			"updated_at":     txn.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, map[string]any{
			"transaction_id": txn.ID,
			"status":         string(txn.Status),
		})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": txn.ID,
		})
		return errs.ErrTransactionNotFound
	}

	r.logger.Debug("Transaction updated", map[string]any{
		"transaction_id": txn.ID,
		"status":         string(txn.Status),
	})
	return nil
}

func toJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}
