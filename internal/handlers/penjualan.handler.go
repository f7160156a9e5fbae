package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type PenjualanService interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.PenjualanHeader, error)
	SoftDelete(ctx context.Context, id int64) (*model.PenjualanHeader, error)
	Get(ctx context.Context, id int64) (*model.PenjualanHeader, error)
	List(ctx context.Context, f model.TransaksiFilter) ([]*model.PenjualanHeader, int64, error)
}

type PenjualanHandler struct {
	svc PenjualanService
}

func NewPenjualanHandler(svc PenjualanService) *PenjualanHandler {
	return &PenjualanHandler{svc: svc}
}

func RegisterPenjualanRoutes(e *router.Group, h *PenjualanHandler) {
	e.POST("/penjualan", h.Checkout)
	e.GET("/penjualan", h.List)
	e.GET("/penjualan/{id}", h.Get)
	e.DELETE("/penjualan/{id}", auth.RequireAdmin(h.SoftDelete))
}

func (h *PenjualanHandler) Checkout(ctx *xhttp.RequestCtx) {
	var req model.CheckoutRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	header, err := h.svc.Checkout(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, header)
}

func (h *PenjualanHandler) SoftDelete(ctx *xhttp.RequestCtx) {
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

func (h *PenjualanHandler) Get(ctx *xhttp.RequestCtx) {
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

func (h *PenjualanHandler) List(ctx *xhttp.RequestCtx) {
	f := transaksiFilter(ctx)
	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.PenjualanHeader]{Items: items, Total: total})
}

func transaksiFilter(ctx *xhttp.RequestCtx) model.TransaksiFilter {
	var f model.TransaksiFilter
	if v := query(ctx, "status"); v != "" {
		s := model.StatusTransaksi(v)
		f.Status = &s
	}
	if v := query(ctx, "status_bayar"); v != "" {
		s := model.StatusBayar(v)
		f.StatusBayar = &s
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
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
