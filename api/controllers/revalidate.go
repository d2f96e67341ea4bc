package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/zenskecarape/storefront-api/api/responses"
	revalidatesvc "github.com/zenskecarape/storefront-api/internal/revalidate"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

const revalidateSecretHeader = "X-Revalidate-Secret"

// Revalidate handles the content platform's publish webhook. The shared
// secret arrives in a header, or in the secret query parameter for platforms
// that cannot set headers.
func Revalidate(svc *revalidatesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revalidate service unavailable"))
			return
		}

		secret := r.Header.Get(revalidateSecretHeader)
		if secret == "" {
			secret = r.URL.Query().Get("secret")
		}
		if err := svc.Authorize(secret); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Publish webhooks carry the whole document; decode leniently and
		// keep only the fields the purge needs.
		var payload revalidatesvc.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid webhook body"))
			return
		}

		purged, err := svc.Revalidate(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if purged == nil {
			purged = []string{}
		}
		responses.WriteSuccess(w, map[string]any{
			"revalidated": true,
			"type":        payload.Type,
			"slug":        string(payload.Slug),
			"purged":      purged,
		})
	}
}
