// ABOUTME: Maps service-layer errors onto HTTP responses for typed handlers
// ABOUTME: Validation maps to 400, configuration to 500, upstream failures to 502

package handlers

import (
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"scholar-assist-api/core/errors"
)

// mapServiceError translates a service error into a huma status error so
// typed handlers never leak internal error types to clients.
func mapServiceError(err error) error {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		return huma.Error400BadRequest(verr.Message)
	}

	var cerr *errors.ConfigError
	if stderrors.As(err, &cerr) {
		return huma.Error500InternalServerError(cerr.Message)
	}

	var aerr *errors.ExternalAPIError
	if stderrors.As(err, &aerr) {
		return huma.Error502BadGateway(aerr.Message)
	}

	return huma.Error500InternalServerError("internal server error")
}
