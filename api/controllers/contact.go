package controllers

import (
	"context"
	"net/http"

	"github.com/zenskecarape/storefront-api/api/responses"
	"github.com/zenskecarape/storefront-api/api/validators"
	contactsvc "github.com/zenskecarape/storefront-api/internal/contact"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

// SubmitContact handles the contact form. The response keeps the storefront's
// original flat body shape: {"message": ...} on success, {"error": ...}
// otherwise.
func SubmitContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteFlatError(w, http.StatusInternalServerError, contactsvc.MsgSendFailed)
			return
		}

		var payload contactsvc.Submission
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteFlatError(w, http.StatusBadRequest, contactsvc.MsgMissingFields)
			return
		}

		if err := svc.Submit(r.Context(), payload); err != nil {
			writeFlatServiceError(r.Context(), logg, w, err, contactsvc.MsgSendFailed)
			return
		}
		responses.WriteFlatMessage(w, http.StatusOK, contactsvc.MsgSuccess)
	}
}

// writeFlatServiceError maps a service error onto the legacy flat body.
// Validation failures surface their Serbian message; everything else hides
// behind the generic fallback.
func writeFlatServiceError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, fallback string) {
	typed := pkgerrors.As(err)
	if typed != nil && typed.Code() == pkgerrors.CodeValidation {
		responses.WriteFlatError(w, http.StatusBadRequest, typed.Message())
		return
	}
	if logg != nil {
		logg.Error(ctx, "request.error", err)
	}
	responses.WriteFlatError(w, http.StatusInternalServerError, fallback)
}
