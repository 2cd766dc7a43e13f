package ledger

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Audilog/pkg/kit"
)

type Server struct {
	Ledger *Service
	Log    *zap.Logger
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Ledger.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type productView struct {
	ProductKey      string `json:"product_key"`
	VendorID        string `json:"vendor_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	RemainingCount  int    `json:"remaining_count"`
	ManufactureDate string `json:"manufacture_date"`
	ExpiryDate      string `json:"expiry_date"`
	VendorPhone     string `json:"vendor_phone"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Ledger.AvailableProducts(r.Context())
	if err != nil {
		s.writeLedgerError(w, r, "list products", err)
		return
	}

	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, productView{
			ProductKey:      p.Key.String(),
			VendorID:        p.VendorID,
			Name:            p.Name,
			Description:     p.Description,
			Image:           p.Image,
			RemainingCount:  p.Remaining,
			ManufactureDate: p.Manufactured,
			ExpiryDate:      p.Expires,
			VendorPhone:     p.VendorPhone,
		})
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.Ledger.Records(r.Context())
	if err != nil {
		s.writeLedgerError(w, r, "list records", err)
		return
	}
	if records == nil {
		records = []Record{}
	}
	kit.WriteJSON(w, http.StatusOK, records)
}

type createListingReq struct {
	PhoneNumber     string `json:"phone_number" validate:"required"`
	ItemName        string `json:"item_name" validate:"required"`
	ItemCount       int    `json:"item_count" validate:"gte=0"`
	ManufactureDate string `json:"manufacture_date"`
	ExpiryDate      string `json:"expiry_date"`
	Description     string `json:"description"`
	ImageData       string `json:"image_data"`
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request) {
	var req createListingReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	id, err := s.Ledger.CreateListing(r.Context(), ListingInput{
		Phone:        req.PhoneNumber,
		Item:         req.ItemName,
		Count:        req.ItemCount,
		Manufactured: req.ManufactureDate,
		Expires:      req.ExpiryDate,
		Description:  req.Description,
		Image:        req.ImageData,
	})
	if err != nil {
		s.writeLedgerError(w, r, "create listing", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) registerCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := s.Ledger.RegisterCustomer(r.Context())
	if err != nil {
		s.writeLedgerError(w, r, "register customer", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type purchaseReq struct {
	CustomerID string `json:"customer_id" validate:"required"`
	ProductKey string `json:"product_key" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
}

func (s *Server) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", kit.ValidationDetails(err))
		return
	}

	key, err := ParseProductKey(req.ProductKey)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	receipt, err := s.Ledger.Purchase(r.Context(), req.CustomerID, key, req.Quantity)
	if err != nil {
		s.writeLedgerError(w, r, "purchase", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, receipt)
}

func (s *Server) writeLedgerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidCustomer),
		errors.Is(err, ErrInvalidListing),
		errors.Is(err, ErrBadProductKey):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, ErrInsufficientStock):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)

	default:
		if s.Log != nil {
			s.Log.Error(op+" failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
