package purchaseorders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/abhyudyayatech/procure-backend/internal/po"
	"github.com/abhyudyayatech/procure-backend/pkg/db/models"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the purchase order persistence service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Save(ctx context.Context, input SaveInput) (*SaveResult, error) {
	if input.Record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record required")
	}
	if input.Actor.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor identity missing")
	}
	if input.Status != po.StatusDraft && input.Status != po.StatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be draft or completed")
	}
	if strings.TrimSpace(input.Record.PONumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "po number required")
	}

	// Drafts may be partial; finalization runs the completeness gate.
	if input.Status == po.StatusCompleted {
		if result := po.ValidateRecord(input.Record); !result.Complete() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").
				WithDetails(result.Details())
		}
	}

	// Totals always come from the one shared derivation, never the client.
	summary := po.RecomputeRecord(input.Record)

	itemsJSON, err := json.Marshal(input.Record.Items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode line items")
	}

	var stored *models.PurchaseOrder
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		taken, err := repo.PONumberTaken(ctx, input.Record.PONumber, input.Record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check po number")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("PO Number %q already exists", input.Record.PONumber))
		}

		if input.Record.ID != nil {
			existing, err := repo.FindByID(ctx, *input.Record.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
			}
			if existing.OwnerID != input.Actor.ID && !input.Actor.Elevated() {
				return pkgerrors.New(pkgerrors.CodeForbidden, "purchase order does not belong to actor")
			}

			applyRecord(existing, input.Record, input.Status, string(itemsJSON), summary)
			stored, err = repo.Update(ctx, existing)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order")
			}
			return nil
		}

		record := &models.PurchaseOrder{OwnerID: input.Actor.ID}
		applyRecord(record, input.Record, input.Status, string(itemsJSON), summary)
		stored, err = repo.Create(ctx, record)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase order")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	saved := *input.Record
	saved.ID = &stored.ID
	return &SaveResult{
		Record:  &saved,
		Status:  po.Status(stored.Status),
		Summary: summary,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64, actor Actor) (*Detail, error) {
	record, err := s.find(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return toDetail(record)
}

func (s *service) List(ctx context.Context, actor Actor) ([]ListEntry, error) {
	if actor.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor identity missing")
	}
	records, err := s.repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	return toEntries(records, false), nil
}

func (s *service) ListAll(ctx context.Context, actor Actor) ([]ListEntry, error) {
	if !actor.Elevated() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "elevated role required")
	}
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	return toEntries(records, true), nil
}

func (s *service) Delete(ctx context.Context, id int64, actor Actor) error {
	if _, err := s.find(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete purchase order")
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64, actor Actor) (*models.PurchaseOrder, error) {
	if actor.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor identity missing")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}
	if record.OwnerID != actor.ID && !actor.Elevated() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "purchase order does not belong to actor")
	}
	return record, nil
}

func applyRecord(dest *models.PurchaseOrder, record *po.Record, status po.Status, itemsJSON string, summary po.Summary) {
	dest.PONumber = record.PONumber
	dest.PODate = record.PODate
	dest.Status = string(status)
	dest.VendorName = record.Vendor.Name
	dest.VendorAddress = record.Vendor.Address
	dest.VendorPhone = record.Vendor.Phone
	dest.VendorEmail = record.Vendor.Email
	dest.VendorGSTIN = record.Vendor.GSTIN
	dest.VendorPAN = record.Vendor.PAN
	dest.ShippingAddress = record.ShippingAddress
	dest.ItemsJSON = itemsJSON
	dest.TaxRatePercent = record.TaxRatePercent
	dest.SubTotal = summary.SubTotal
	dest.TaxAmount = summary.TaxAmount
	dest.GrandTotal = summary.GrandTotal
}

func toDetail(record *models.PurchaseOrder) (*Detail, error) {
	var items []po.RecordItem
	if err := json.Unmarshal([]byte(record.ItemsJSON), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode line items")
	}
	id := record.ID
	return &Detail{
		Record: &po.Record{
			ID:       &id,
			PONumber: record.PONumber,
			PODate:   record.PODate,
			Vendor: po.Vendor{
				Name:    record.VendorName,
				Address: record.VendorAddress,
				Phone:   record.VendorPhone,
				Email:   record.VendorEmail,
				GSTIN:   record.VendorGSTIN,
				PAN:     record.VendorPAN,
			},
			ShippingAddress: record.ShippingAddress,
			Items:           items,
			TaxRatePercent:  record.TaxRatePercent,
		},
		Status: po.Status(record.Status),
		Summary: po.Summary{
			SubTotal:   record.SubTotal,
			TaxAmount:  record.TaxAmount,
			GrandTotal: record.GrandTotal,
		},
		OwnerID:   record.OwnerID,
		CreatedAt: record.CreatedAt,
	}, nil
}

func toEntries(records []models.PurchaseOrder, includeOwner bool) []ListEntry {
	entries := make([]ListEntry, 0, len(records))
	for _, record := range records {
		entry := ListEntry{
			ID:         record.ID,
			PONumber:   record.PONumber,
			PODate:     record.PODate,
			VendorName: record.VendorName,
			GrandTotal: record.GrandTotal,
			Status:     po.Status(record.Status),
			CreatedAt:  record.CreatedAt,
		}
		if includeOwner {
			entry.OwnerID = record.OwnerID
		}
		entries = append(entries, entry)
	}
	return entries
}
