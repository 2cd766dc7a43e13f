package storefront

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Audilog/pkg/kit"
	"Audilog/pkg/kv"
)

type Server struct {
	Catalog *Catalog
	Cart    *CartStore
	Orders  *OrderStore
	Prefs   *Prefs
	Storage kv.Store
	Log     *zap.Logger
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Storage.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.ListSortedByID(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.serverError(w, r, "list products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Catalog.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items(r.Context()))
}

type addCartItemReq struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	p, ok, err := s.Catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		s.serverError(w, r, "add cart item", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": req.ProductID})
		return
	}

	if err := s.Cart.Add(r.Context(), p); err != nil {
		s.serverError(w, r, "add cart item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items(r.Context()))
}

type updateCartItemReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.Cart.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		if errors.Is(err, ErrUnknownProduct) {
			kit.WriteError(w, r, http.StatusNotFound, "not in cart", map[string]any{"id": id})
			return
		}
		s.serverError(w, r, "update cart item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items(r.Context()))
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.serverError(w, r, "remove cart item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items(r.Context()))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.Clear(r.Context()); err != nil {
		s.serverError(w, r, "clear cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	CustomerName string `json:"customer_name" validate:"required"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	o, err := Checkout(r.Context(), s.Cart, s.Orders, req.CustomerName)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		s.serverError(w, r, "checkout", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.ListNewestFirst(r.Context())
	if err != nil {
		s.serverError(w, r, "list orders", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) getLanguage(w http.ResponseWriter, r *http.Request) {
	code, err := s.Prefs.Language(r.Context())
	if err != nil {
		s.serverError(w, r, "get language", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]string{"language": code})
}

type setLanguageReq struct {
	Language string `json:"language" validate:"required"`
}

func (s *Server) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req setLanguageReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	if err := s.Prefs.SetLanguage(r.Context(), req.Language); err != nil {
		if errors.Is(err, ErrBadLanguage) {
			kit.WriteError(w, r, http.StatusBadRequest, err.Error(), map[string]any{"allowed": []string{"en", "ta", "hi"}})
			return
		}
		s.serverError(w, r, "set language", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]string{"language": req.Language})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
