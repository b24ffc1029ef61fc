package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roasthouse/checkout-api/internal/cart"
	"github.com/roasthouse/checkout-api/internal/catalog"
	"github.com/roasthouse/checkout-api/internal/checkout"
	"github.com/roasthouse/checkout-api/internal/logging"
	"github.com/roasthouse/checkout-api/internal/payment"
)

// CartService is the cart mutation surface the handlers call.
type CartService interface {
	AddItem(ctx context.Context, sessionID, slug string, qty int) (cart.Cart, map[string]catalog.Summary, error)
	RemoveItem(ctx context.Context, sessionID, slug string, qty int) (cart.Cart, map[string]catalog.Summary, error)
}

// CheckoutService is the checkout workflow surface the handlers call.
type CheckoutService interface {
	Preview(ctx context.Context, sessionID string) (checkout.Preview, error)
	Submit(ctx context.Context, sessionID string, form checkout.SubmitForm) (checkout.SubmitResult, error)
	Receipt(ctx context.Context, orderID int64) (checkout.OrderView, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context, inStockOnly bool) ([]catalog.Product, error)
}

type Handler struct {
	Carts    CartService
	Checkout CheckoutService
	Products ProductLister
	// Ready reports whether the order ledger is reachable.
	Ready func(ctx context.Context) error
}

func (h *Handler) Register(r *chi.Mux) {
	r.Get("/readyz", h.readyz)
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)
		r.Get("/api/products", h.listProducts)
		r.Post("/api/add-to-cart", h.addToCart)
		r.Post("/api/remove-from-cart", h.removeFromCart)
		r.Get("/checkout", h.previewCheckout)
		r.Post("/checkout", h.submitCheckout)
		r.Get("/receipt/{id}", h.receipt)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type cartMutationReq struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type cartMutationResp struct {
	Status string                     `json:"status"`
	Cart   cart.Cart                  `json:"cart"`
	Items  map[string]catalog.Summary `json:"items"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, h.Carts.AddItem)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, h.Carts.RemoveItem)
}

func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, sessionID, slug string, qty int) (cart.Cart, map[string]catalog.Summary, error)) {

	var req cartMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid json"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, items, err := op(ctx, sessionID(ctx), req.Item, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResp{Status: "success", Cart: c, Items: items})
}

func (h *Handler) previewCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Checkout.Preview(ctx, sessionID(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failure", "message": "invalid form"})
		return
	}
	form := checkout.SubmitForm{
		FullName:     r.PostFormValue("full_name"),
		Email:        r.PostFormValue("email"),
		Address:      r.PostFormValue("address"),
		City:         r.PostFormValue("city"),
		State:        r.PostFormValue("state"),
		Zip:          r.PostFormValue("zip"),
		Country:      r.PostFormValue("country"),
		PaymentToken: r.PostFormValue("payment_token"),
	}

	// The charge and ledger write run to completion even if the client goes
	// away; aborting between them is the dangerous state.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 30*time.Second)
	defer cancel()

	res, err := h.Checkout.Submit(ctx, sessionID(ctx), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":      "success",
		"order_id":    res.OrderID,
		"total_cents": res.TotalCents,
		"receipt_url": "/receipt/" + strconv.FormatInt(res.OrderID, 10),
	})
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	view, err := h.Checkout.Receipt(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Products.ListProducts(ctx, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bySlug := make(map[string]catalog.Product, len(ps))
	for _, p := range ps {
		bySlug[p.Slug] = p
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": bySlug})
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Ready != nil {
		if err := h.Ready(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeError maps the error taxonomy onto HTTP statuses. Post-charge
// persistence failures deliberately return a generic message; the details
// live in the reconciliation log, not the response body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())
	var gatewayErr *payment.GatewayError
	var persistErr *checkout.PersistenceError

	switch {
	case errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrItemNotInCart),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidSubmission),
		errors.Is(err, checkout.ErrUnknownProduct):
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failure", "message": err.Error()})
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		writeJSON(w, http.StatusConflict, map[string]string{"status": "failure", "message": err.Error()})
	case errors.Is(err, checkout.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "failure", "message": "not found"})
	case errors.As(err, &gatewayErr):
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"status": "failure", "message": gatewayErr.Error()})
	case errors.As(err, &persistErr) && persistErr.AfterCharge:
		log.Error("checkout persistence failure after charge", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "failure",
			"message": "order could not be completed, please contact support",
		})
	default:
		log.Error("internal error", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failure", "message": "internal server error"})
	}
}
