package api

import (
	"errors"
	"net/http"
	"testing"

	"CorpFin360/internal/engine"
	xhttp "CorpFin360/pkg/http"
)

func TestToAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		kind engine.Kind
		want int
	}{
		{engine.ErrInvalidInput, http.StatusBadRequest},
		{engine.ErrInvalidConfidenceLevel, http.StatusBadRequest},
		{engine.ErrInsufficientEntities, http.StatusBadRequest},
		{engine.ErrMissingScore, http.StatusBadGateway},
		{engine.ErrPredictorOutputInvalid, http.StatusBadGateway},
		{engine.ErrPredictorUnavailable, http.StatusServiceUnavailable},
	}
	for _, c := range cases {
		err := toAppError(engine.NewError(c.kind, "boom"))
		var appErr *xhttp.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("kind %s: not an app error: %v", c.kind, err)
		}
		if appErr.Status != c.want {
			t.Fatalf("kind %s: status %d want %d", c.kind, appErr.Status, c.want)
		}
		if appErr.Message != "boom" {
			t.Fatalf("kind %s: message %q", c.kind, appErr.Message)
		}
	}
}

func TestToAppErrorHidesInternalCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:9000: connection refused")
	err := toAppError(engine.WrapError(engine.ErrPredictorUnavailable, "predictor service unreachable", cause))
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("not an app error: %v", err)
	}
	if appErr.Message != "predictor service unreachable" {
		t.Fatalf("internal cause leaked: %q", appErr.Message)
	}
}

func TestToAppErrorPassthrough(t *testing.T) {
	plain := errors.New("unknown")
	if got := toAppError(plain); got != plain {
		t.Fatalf("non-engine error rewritten: %v", got)
	}
}
