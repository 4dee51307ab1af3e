package predictor

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"CorpFin360/internal/engine"
	"CorpFin360/pkg/config"
	xhttp "CorpFin360/pkg/http"
)

// ServiceBase centralizes HTTP access to the external model service and the
// mapping of its failures onto the analytics error taxonomy. It performs no
// retries; retry policy belongs to the caller.
type ServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewServiceBase builds an HTTP client with timeout and base URL from config.
func NewServiceBase(cfg *config.Config) *ServiceBase {
	timeout := cfg.Predictor.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ServiceBase{
		baseURL: cfg.Predictor.ServiceURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// postJSON posts the payload to `path` under baseURL and decodes the JSON
// response into dest. Transport failures and 5xx responses are transient;
// anything the service answered but that cannot be used is permanent.
func (b *ServiceBase) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	return b.send(ctx, xhttp.MethodPost, path, payload, dest)
}

// getJSON issues a GET under baseURL with the same error mapping.
func (b *ServiceBase) getJSON(ctx context.Context, path string, dest interface{}) error {
	return b.send(ctx, xhttp.MethodGet, path, nil, dest)
}

func (b *ServiceBase) send(ctx context.Context, method, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return engine.NewError(engine.ErrPredictorUnavailable, "predictor client not initialized")
	}
	resp, err := b.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method: method,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	})
	if err != nil {
		return engine.WrapError(engine.ErrPredictorUnavailable, "predictor service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return engine.NewErrorf(engine.ErrPredictorUnavailable, "predictor service returned status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return engine.NewErrorf(engine.ErrPredictorOutputInvalid, "predictor rejected request: status %d: %s", resp.StatusCode, body)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return engine.WrapError(engine.ErrPredictorOutputInvalid, "predictor returned unparseable output", err)
	}
	return nil
}
