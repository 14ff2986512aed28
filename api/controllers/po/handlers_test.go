package po

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhyudyayatech/procure-backend/api/middleware"
	internalpo "github.com/abhyudyayatech/procure-backend/internal/po"
	"github.com/abhyudyayatech/procure-backend/internal/purchaseorders"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
	"github.com/abhyudyayatech/procure-backend/pkg/types"
)

type stubPOService struct {
	save    func(ctx context.Context, input purchaseorders.SaveInput) (*purchaseorders.SaveResult, error)
	get     func(ctx context.Context, id int64, actor purchaseorders.Actor) (*purchaseorders.Detail, error)
	list    func(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error)
	listAll func(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error)
	delete  func(ctx context.Context, id int64, actor purchaseorders.Actor) error
}

func (s *stubPOService) Save(ctx context.Context, input purchaseorders.SaveInput) (*purchaseorders.SaveResult, error) {
	if s.save != nil {
		return s.save(ctx, input)
	}
	id := int64(1)
	record := *input.Record
	record.ID = &id
	return &purchaseorders.SaveResult{Record: &record, Status: input.Status}, nil
}

func (s *stubPOService) Get(ctx context.Context, id int64, actor purchaseorders.Actor) (*purchaseorders.Detail, error) {
	if s.get != nil {
		return s.get(ctx, id, actor)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
}

func (s *stubPOService) List(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error) {
	if s.list != nil {
		return s.list(ctx, actor)
	}
	return nil, nil
}

func (s *stubPOService) ListAll(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error) {
	if s.listAll != nil {
		return s.listAll(ctx, actor)
	}
	return nil, nil
}

func (s *stubPOService) Delete(ctx context.Context, id int64, actor purchaseorders.Actor) error {
	if s.delete != nil {
		return s.delete(ctx, id, actor)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testRouter(svc purchaseorders.Service) http.Handler {
	logg := testLogger()
	r := chi.NewRouter()
	r.Use(middleware.Actor(logg))
	r.Post("/api/po/save", Save(svc, logg))
	r.Get("/api/po/list", List(svc, logg))
	r.Get("/api/po/list/all", ListAll(svc, logg))
	r.Get("/api/po/{poID}", Get(svc, logg))
	r.Delete("/api/po/{poID}", Delete(svc, logg))
	return r
}

func saveBody(t *testing.T, status string) *bytes.Reader {
	t.Helper()
	payload := map[string]any{
		"record": map[string]any{
			"po_number": "PO/2025/014",
			"po_date":   "2025-06-12",
			"vendor":    map[string]any{"name": "Acme", "address": "12 Market Road"},
			"items": []map[string]any{
				{"sl_no": 1, "description": "Junction box", "sku": "JB-01", "quantity": 3, "unit_price": 200, "total_price": 600},
			},
			"gst_rate": 18,
		},
		"status": status,
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestSaveHandler(t *testing.T) {
	var captured purchaseorders.SaveInput
	svc := &stubPOService{
		save: func(ctx context.Context, input purchaseorders.SaveInput) (*purchaseorders.SaveResult, error) {
			captured = input
			id := int64(12)
			record := *input.Record
			record.ID = &id
			return &purchaseorders.SaveResult{Record: &record, Status: input.Status}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/po/save", saveBody(t, "draft"))
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", captured.Actor.ID)
	assert.Equal(t, internalpo.StatusDraft, captured.Status)
	assert.Equal(t, "PO/2025/014", captured.Record.PONumber)
	assert.True(t, captured.Record.TaxRatePercent.Equal(decimal.NewFromInt(18)))

	var envelope struct {
		Data purchaseorders.SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Record.ID)
	assert.Equal(t, int64(12), *envelope.Data.Record.ID)
}

func TestSaveHandlerRequiresActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/po/save", saveBody(t, "draft"))
	rec := httptest.NewRecorder()
	testRouter(&stubPOService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSaveHandlerRejectsUnknownStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/po/save", saveBody(t, "finalized"))
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(&stubPOService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveHandlerConflictEnvelope(t *testing.T) {
	svc := &stubPOService{
		save: func(ctx context.Context, input purchaseorders.SaveInput) (*purchaseorders.SaveResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, `PO Number "PO/2025/014" already exists`)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/po/save", saveBody(t, "draft"))
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "already exists")
}

func TestListHandlerScopesActor(t *testing.T) {
	svc := &stubPOService{
		list: func(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error) {
			assert.Equal(t, "user-1", actor.ID)
			return []purchaseorders.ListEntry{{ID: 4, PONumber: "PO/2025/014"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/po/list", nil)
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PO/2025/014")
}

func TestListAllHandlerForwardsRole(t *testing.T) {
	svc := &stubPOService{
		listAll: func(ctx context.Context, actor purchaseorders.Actor) ([]purchaseorders.ListEntry, error) {
			if !actor.Elevated() {
				return nil, pkgerrors.New(pkgerrors.CodeForbidden, "elevated role required")
			}
			return []purchaseorders.ListEntry{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/po/list/all", nil)
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/po/list/all", nil)
	req.Header.Set("X-Actor-Id", "admin-1")
	req.Header.Set("X-Actor-Role", "admin")
	rec = httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHandlerParsesID(t *testing.T) {
	svc := &stubPOService{
		get: func(ctx context.Context, id int64, actor purchaseorders.Actor) (*purchaseorders.Detail, error) {
			assert.Equal(t, int64(12), id)
			return &purchaseorders.Detail{
				Record:  &internalpo.Record{PONumber: "PO/2025/014"},
				Status:  internalpo.StatusDraft,
				OwnerID: actor.ID,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/po/12", nil)
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PO/2025/014")
}

func TestGetHandlerRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/po/abc", nil)
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(&stubPOService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	deleted := int64(0)
	svc := &stubPOService{
		delete: func(ctx context.Context, id int64, actor purchaseorders.Actor) error {
			deleted = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/po/9", nil)
	req.Header.Set("X-Actor-Id", "user-1")
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), deleted)
}
