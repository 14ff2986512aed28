package po

import (
	"context"
	"net/http"
	"time"

	"github.com/abhyudyayatech/procure-backend/api/responses"
	"github.com/abhyudyayatech/procure-backend/api/validators"
	"github.com/abhyudyayatech/procure-backend/internal/export"
	"github.com/abhyudyayatech/procure-backend/internal/pdfrender"
	internalpo "github.com/abhyudyayatech/procure-backend/internal/po"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Generate runs the completeness gate, then asks the external renderer for
// the final PDF and streams it back as a download.
func Generate(renderer pdfrender.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if renderer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pdf renderer unavailable"))
			return
		}

		record, ctx, err := decodeExportRecord(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result := internalpo.ValidateRecord(record); !result.Complete() {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").WithDetails(result.Details()))
			return
		}

		body, err := renderer.Render(ctx, record)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteAttachment(w, contentTypePDF, export.PDFFilename(record.PONumber), body)
	}
}

// ExportCSV writes the submitted record as the full CSV document.
func ExportCSV(company export.Company, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ctx, err := decodeExportRecord(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body, err := export.CSV(export.SnapshotFromRecord(record, company))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render csv"))
			return
		}

		responses.WriteAttachment(w, contentTypeCSV, export.CSVFilename(record.PONumber), body)
	}
}

// ExportQuotation writes the price-free quotation-request workbook.
func ExportQuotation(company export.Company, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ctx, err := decodeExportRecord(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body, err := export.Quotation(export.SnapshotFromRecord(record, company))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render quotation workbook"))
			return
		}

		responses.WriteAttachment(w, contentTypeXLSX, export.QuotationFilename(time.Now()), body)
	}
}

// ExportEstimate writes the internal estimate workbook with the financial trailer.
func ExportEstimate(company export.Company, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ctx, err := decodeExportRecord(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body, err := export.Estimate(export.SnapshotFromRecord(record, company))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render estimate workbook"))
			return
		}

		responses.WriteAttachment(w, contentTypeXLSX, export.EstimateFilename(time.Now()), body)
	}
}

func decodeExportRecord(r *http.Request, logg *logger.Logger) (*internalpo.Record, context.Context, error) {
	var req ExportRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return nil, r.Context(), err
	}
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithPONumber(ctx, req.Record.PONumber)
	}
	return req.Record, ctx, nil
}
