package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type PembelianService interface {
	Create(ctx context.Context, req model.PurchaseRequest) (*model.PembelianHeader, error)
	PayHeader(ctx context.Context, headerID int64, amount int64) (*model.AdjustResult, error)
	SoftDelete(ctx context.Context, id int64) (*model.PembelianHeader, error)
	Get(ctx context.Context, id int64) (*model.PembelianHeader, error)
	List(ctx context.Context, f model.TransaksiFilter) ([]*model.PembelianHeader, int64, error)
	RecalculateAllSupplierDebt(ctx context.Context) ([]*model.SupplierDebtReport, error)
}

type PembelianHandler struct {
	svc PembelianService
}

func NewPembelianHandler(svc PembelianService) *PembelianHandler {
	return &PembelianHandler{svc: svc}
}

func RegisterPembelianRoutes(e *router.Group, h *PembelianHandler) {
	e.POST("/pembelian", auth.RequireAdmin(h.Create))
	e.GET("/pembelian", h.List)
	e.GET("/pembelian/{id}", h.Get)
	e.POST("/pembelian/{id}/bayar", auth.RequireAdmin(h.PayHeader))
	e.DELETE("/pembelian/{id}", auth.RequireAdmin(h.SoftDelete))
	e.POST("/pembelian/recalculate-hutang", auth.RequireAdmin(h.RecalculateHutang))
}

func (h *PembelianHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.PurchaseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	header, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, header)
}

func (h *PembelianHandler) PayHeader(ctx *xhttp.RequestCtx) {
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
	result, err := h.svc.PayHeader(ctx, id, req.Jumlah)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, result)
}

func (h *PembelianHandler) SoftDelete(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	header, err := h.svc.SoftDelete(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, header)
}

func (h *PembelianHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	header, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, header)
}

func (h *PembelianHandler) List(ctx *xhttp.RequestCtx) {
	f := transaksiFilter(ctx)
	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.PembelianHeader]{Items: items, Total: total})
}

// RecalculateHutang rebuilds every supplier payable from the surviving
// purchase rows. Meant for after manual data fixes.
func (h *PembelianHandler) RecalculateHutang(ctx *xhttp.RequestCtx) {
	reports, err := h.svc.RecalculateAllSupplierDebt(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, reports)
}
