package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// NeedRepository handles database operations for needs
type NeedRepository struct {
	db *gorm.DB
}

// NewNeedRepository creates a new instance of NeedRepository
func NewNeedRepository(db *gorm.DB) *NeedRepository {
	return &NeedRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *NeedRepository) WithTx(tx *gorm.DB) *NeedRepository {
	return &NeedRepository{db: tx}
}

// Create creates a new need in the database
func (r *NeedRepository) Create(ctx context.Context, need *models.Need) error {
	return r.db.WithContext(ctx).Create(need).Error
}

// GetByID retrieves a need by ID from the database
func (r *NeedRepository) GetByID(ctx context.Context, id uint) (*models.Need, error) {
	var need models.Need
	if err := r.db.WithContext(ctx).First(&need, id).Error; err != nil {
		return nil, err
	}
	return &need, nil
}

// List retrieves all needs with pagination
func (r *NeedRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Need, error) {
	var needs []models.Need
	query := r.db.WithContext(ctx).Model(&models.Need{}).Order("id DESC")
	if opts != nil && opts.Limit > 0 {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&needs).Error
	return needs, err
}

// Update saves all fields of an existing need
func (r *NeedRepository) Update(ctx context.Context, need *models.Need) error {
	return r.db.WithContext(ctx).Save(need).Error
}

// Delete removes a need and its trace history
func (r *NeedRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("need_id = ?", id).Delete(&models.NeedTrace{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Need{}, id).Error
	})
}

// NeedTraceRepository handles database operations for need traces.
// Traces are append-only; there are no update or delete methods.
type NeedTraceRepository struct {
	db *gorm.DB
}

// NewNeedTraceRepository creates a new instance of NeedTraceRepository
func NewNeedTraceRepository(db *gorm.DB) *NeedTraceRepository {
	return &NeedTraceRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *NeedTraceRepository) WithTx(tx *gorm.DB) *NeedTraceRepository {
	return &NeedTraceRepository{db: tx}
}

// Create appends a new trace row
func (r *NeedTraceRepository) Create(ctx context.Context, trace *models.NeedTrace) error {
	return r.db.WithContext(ctx).Create(trace).Error
}

// ListByNeed retrieves all trace rows for a need in insertion order
func (r *NeedTraceRepository) ListByNeed(ctx context.Context, needID uint) ([]models.NeedTrace, error) {
	var traces []models.NeedTrace
	err := r.db.WithContext(ctx).
		Where("need_id = ?", needID).
		Order("id ASC").
		Find(&traces).Error
	return traces, err
}
