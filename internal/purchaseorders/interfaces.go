package purchaseorders

import (
	"context"

	"github.com/abhyudyayatech/procure-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the storage surface for persisted purchase orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.PurchaseOrder) (*models.PurchaseOrder, error)
	Update(ctx context.Context, record *models.PurchaseOrder) (*models.PurchaseOrder, error)
	FindByID(ctx context.Context, id int64) (*models.PurchaseOrder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.PurchaseOrder, error)
	ListAll(ctx context.Context) ([]models.PurchaseOrder, error)
	Delete(ctx context.Context, id int64) error
	PONumberTaken(ctx context.Context, poNumber string, excludeID *int64) (bool, error)
}

// Service exposes the order persistence operations behind the API.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*SaveResult, error)
	Get(ctx context.Context, id int64, actor Actor) (*Detail, error)
	List(ctx context.Context, actor Actor) ([]ListEntry, error)
	ListAll(ctx context.Context, actor Actor) ([]ListEntry, error)
	Delete(ctx context.Context, id int64, actor Actor) error
}
