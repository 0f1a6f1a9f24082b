package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
)

// Free-text fields are trimmed and capped before they reach the services.
const (
	maxShortTextLen = 200
	maxFreeTextLen  = 4000
)

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name).
			WithDetails(map[string]any{"param": name})
	}
	return id, nil
}
