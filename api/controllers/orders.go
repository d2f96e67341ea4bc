package controllers

import (
	"net/http"

	"github.com/zenskecarape/storefront-api/api/responses"
	"github.com/zenskecarape/storefront-api/api/validators"
	ordersvc "github.com/zenskecarape/storefront-api/internal/orders"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/types"
)

// SubmitOrder handles the checkout form. Success keeps the storefront's flat
// body shape with the order reference alongside the message.
func SubmitOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteFlatError(w, http.StatusInternalServerError, ordersvc.MsgSendFailed)
			return
		}

		var payload ordersvc.Submission
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteFlatError(w, http.StatusBadRequest, ordersvc.MsgMissingFields)
			return
		}

		result, err := svc.Submit(r.Context(), payload)
		if err != nil {
			writeFlatServiceError(r.Context(), logg, w, err, ordersvc.MsgSendFailed)
			return
		}
		responses.WriteJSONStatus(w, http.StatusOK, types.FlatMessage{
			Message:   ordersvc.MsgSuccess,
			Reference: result.Reference,
		})
	}
}
