package controllers

import (
	"net/http"

	"github.com/zenskecarape/storefront-api/api/responses"
	"github.com/zenskecarape/storefront-api/api/validators"
	cartsvc "github.com/zenskecarape/storefront-api/internal/cart"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

const (
	cartTokenHeader = "X-Cart-Token"
	cartTokenCookie = "cart_token"
)

// cartToken finds the shopper's cart token, minting one on first contact.
// The token always echoes back in the response header and cookie so the
// storefront can hold on to it.
func cartToken(w http.ResponseWriter, r *http.Request) string {
	token := r.Header.Get(cartTokenHeader)
	if token == "" {
		if cookie, err := r.Cookie(cartTokenCookie); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		token = cartsvc.NewToken()
	}
	w.Header().Set(cartTokenHeader, token)
	http.SetCookie(w, &http.Cookie{
		Name:     cartTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

type cartResponse struct {
	Items      []cartsvc.LineItem `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalRSD   string             `json:"totalRSD"`
	TotalEUR   string             `json:"totalEUR"`
	Outcome    cartsvc.Outcome    `json:"outcome,omitempty"`
}

func toCartResponse(c cartsvc.Cart, outcome cartsvc.Outcome) cartResponse {
	items := c.Items
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalRSD:   c.TotalRSD().StringFixed(2),
		TotalEUR:   c.TotalEUR().StringFixed(2),
		Outcome:    outcome,
	}
}

// GetCart serves the cart for the shopper's token.
func GetCart(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(w, r)
		c, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(c, ""))
	}
}

type addItemRequest struct {
	Item cartsvc.LineItem `json:"item"`
}

// AddCartItem puts an item in the cart.
func AddCartItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(w, r)

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithCartToken(r.Context(), token)
		c, outcome, err := svc.Add(ctx, token, payload.Item)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(c, outcome))
	}
}

type updateQuantityRequest struct {
	Ref      cartsvc.ItemRef `json:"ref"`
	Quantity int             `json:"quantity"`
}

// UpdateCartQuantity sets a line's quantity. Zero removes the line.
func UpdateCartQuantity(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(w, r)

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Ref.ProductID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ref.productId is required"))
			return
		}

		c, err := svc.SetQuantity(r.Context(), token, payload.Ref, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(c, ""))
	}
}

type removeItemRequest struct {
	Ref cartsvc.ItemRef `json:"ref"`
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(w, r)

		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Ref.ProductID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ref.productId is required"))
			return
		}

		c, err := svc.Remove(r.Context(), token, payload.Ref)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(c, ""))
	}
}

// ClearCart empties the cart.
func ClearCart(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(w, r)
		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(cartsvc.Cart{}, ""))
	}
}
