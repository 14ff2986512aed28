package po

import (
	"net/http"

	"github.com/abhyudyayatech/procure-backend/api/middleware"
	internalpo "github.com/abhyudyayatech/procure-backend/internal/po"
	"github.com/abhyudyayatech/procure-backend/internal/purchaseorders"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
)

// SaveRequest carries a canonical record plus the requested status tag.
type SaveRequest struct {
	Record *internalpo.Record `json:"record" validate:"required"`
	Status string             `json:"status" validate:"required,oneof=draft completed"`
}

// ExportRequest carries the composed record an export acts on. Exports work
// on the submitted record, saved or not.
type ExportRequest struct {
	Record *internalpo.Record `json:"record" validate:"required"`
}

func requireActor(r *http.Request) (purchaseorders.Actor, error) {
	actorID := middleware.ActorIDFromContext(r.Context())
	if actorID == "" {
		return purchaseorders.Actor{}, pkgerrors.New(pkgerrors.CodeForbidden, "actor identity missing")
	}
	return purchaseorders.Actor{
		ID:   actorID,
		Role: middleware.ActorRoleFromContext(r.Context()),
	}, nil
}
