package pdfrender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abhyudyayatech/procure-backend/internal/po"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
	"github.com/abhyudyayatech/procure-backend/pkg/metrics"
)

const actionRenderPDF = "render_pdf"

// Renderer produces a rendered PDF document for a canonical record.
type Renderer interface {
	Render(ctx context.Context, record *po.Record) ([]byte, error)
}

type client struct {
	endpoint string
	http     *http.Client
	logg     *logger.Logger
	metrics  *metrics.CollaboratorMetrics
}

// NewClient builds an HTTP renderer client for the external PDF service.
func NewClient(endpoint string, timeout time.Duration, logg *logger.Logger, m *metrics.CollaboratorMetrics) (Renderer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("pdf renderer endpoint required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logg:     logg,
		metrics:  m,
	}, nil
}

// renderFailure mirrors the error body shape of the rendering service.
type renderFailure struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (c *client) Render(ctx context.Context, record *po.Record) ([]byte, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode record")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build render request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(actionRenderPDF, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(actionRenderPDF)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call pdf renderer")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(actionRenderPDF)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read renderer response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncFailure(actionRenderPDF)
		c.logg.Error(ctx, "PDF render request failed",
			fmt.Errorf("pdf renderer returned %d", resp.StatusCode))
		return nil, renderError(resp.StatusCode, body)
	}

	c.metrics.IncSuccess(actionRenderPDF)
	return body, nil
}

// renderError surfaces the collaborator's own message when the body carries
// one, so the UI can show the renderer's reason rather than a blanket failure.
func renderError(status int, body []byte) *pkgerrors.Error {
	var failure renderFailure
	if err := json.Unmarshal(body, &failure); err == nil {
		if failure.Detail != "" {
			return pkgerrors.New(pkgerrors.CodeDependency, failure.Detail)
		}
		if failure.Error != "" {
			return pkgerrors.New(pkgerrors.CodeDependency, failure.Error)
		}
	}
	return pkgerrors.New(pkgerrors.CodeDependency,
		fmt.Sprintf("pdf renderer returned status %d", status))
}
