package purchaseorders

import (
	"context"

	"github.com/abhyudyayatech/procure-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchase order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) Update(ctx context.Context, record *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.PurchaseOrder, error) {
	var record models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]models.PurchaseOrder, error) {
	var records []models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.PurchaseOrder, error) {
	var records []models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PurchaseOrder{}).Error
}

func (r *repository) PONumberTaken(ctx context.Context, poNumber string, excludeID *int64) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("po_number = ?", poNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
