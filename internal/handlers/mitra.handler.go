package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type MitraService interface {
	CreateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	ListCustomers(ctx context.Context, f model.MitraFilter) ([]*model.Customer, int64, error)
	BayarPiutang(ctx context.Context, customerID int64, amount int64) (*model.AdjustResult, error)

	CreateSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, f model.MitraFilter) ([]*model.Supplier, int64, error)

	RiwayatLedger(ctx context.Context, kind model.AccountKind, ownerID int64, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error)
}

type MitraHandler struct {
	svc MitraService
}

func NewMitraHandler(svc MitraService) *MitraHandler {
	return &MitraHandler{svc: svc}
}

func RegisterMitraRoutes(e *router.Group, h *MitraHandler) {
	e.GET("/customers", h.ListCustomers)
	e.GET("/customers/{id}", h.GetCustomer)
	e.GET("/customers/{id}/ledger", h.CustomerLedger)
	e.POST("/customers", h.CreateCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.POST("/customers/{id}/bayar", h.BayarPiutang)

	e.GET("/suppliers", h.ListSuppliers)
	e.GET("/suppliers/{id}", h.GetSupplier)
	e.GET("/suppliers/{id}/ledger", h.SupplierLedger)
	e.POST("/suppliers", h.CreateSupplier)
	e.PUT("/suppliers/{id}", h.UpdateSupplier)
}

type bayarRequest struct {
	Jumlah int64 `json:"jumlah"`
}

func (h *MitraHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var c model.Customer
	if err := readJSON(ctx, &c); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.svc.CreateCustomer(ctx, &c)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *MitraHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var c model.Customer
	if err := readJSON(ctx, &c); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c.ID = id
	updated, err := h.svc.UpdateCustomer(ctx, &c)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *MitraHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.svc.GetCustomer(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *MitraHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	f := mitraFilter(ctx)
	items, total, err := h.svc.ListCustomers(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.Customer]{Items: items, Total: total})
}

// BayarPiutang accepts a receivable payment; overpayment comes back as
// kembalian in the result.
func (h *MitraHandler) BayarPiutang(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req bayarRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	result, err := h.svc.BayarPiutang(ctx, id, req.Jumlah)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, result)
}

func (h *MitraHandler) CustomerLedger(ctx *xhttp.RequestCtx) {
	h.ledger(ctx, model.AccountCustomer)
}

func (h *MitraHandler) SupplierLedger(ctx *xhttp.RequestCtx) {
	h.ledger(ctx, model.AccountSupplier)
}

func (h *MitraHandler) ledger(ctx *xhttp.RequestCtx, kind model.AccountKind) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var f model.LedgerFilter
	if n, ok := queryInt(ctx, "limit"); ok {
		f.Limit = n
	}
	if n, ok := queryInt(ctx, "offset"); ok {
		f.Offset = n
	}
	items, total, err := h.svc.RiwayatLedger(ctx, kind, id, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.LedgerEntry]{Items: items, Total: total})
}

func (h *MitraHandler) CreateSupplier(ctx *xhttp.RequestCtx) {
	var s model.Supplier
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.svc.CreateSupplier(ctx, &s)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *MitraHandler) UpdateSupplier(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var s model.Supplier
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.ID = id
	updated, err := h.svc.UpdateSupplier(ctx, &s)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *MitraHandler) GetSupplier(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.svc.GetSupplier(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, s)
}

func (h *MitraHandler) ListSuppliers(ctx *xhttp.RequestCtx) {
	f := mitraFilter(ctx)
	items, total, err := h.svc.ListSuppliers(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.Supplier]{Items: items, Total: total})
}

func mitraFilter(ctx *xhttp.RequestCtx) model.MitraFilter {
	var f model.MitraFilter
	if v := query(ctx, "q"); v != "" {
		f.Keyword = &v
	}
	if v := query(ctx, "aktif"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			f.Aktif = &b
		}
	}
	if n, ok := queryInt(ctx, "limit"); ok {
		f.Limit = n
	}
	if n, ok := queryInt(ctx, "offset"); ok {
		f.Offset = n
	}
	return f
}
