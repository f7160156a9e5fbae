package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type BarangService interface {
	Create(ctx context.Context, req model.BarangCreateRequest) (*model.Barang, error)
	Update(ctx context.Context, b *model.Barang) (*model.Barang, error)
	Get(ctx context.Context, id int64) (*model.Barang, error)
	List(ctx context.Context, f model.BarangFilter) ([]*model.Barang, int64, error)
	Deactivate(ctx context.Context, id int64) error
}

type BarangHandler struct {
	svc BarangService
}

func NewBarangHandler(svc BarangService) *BarangHandler {
	return &BarangHandler{svc: svc}
}

func RegisterBarangRoutes(e *router.Group, h *BarangHandler) {
	e.GET("/barang", h.List)
	e.GET("/barang/{id}", h.Get)
	e.POST("/barang", auth.RequireAdmin(h.Create))
	e.PUT("/barang/{id}", auth.RequireAdmin(h.Update))
	e.DELETE("/barang/{id}", auth.RequireAdmin(h.Deactivate))
}

func (h *BarangHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.BarangCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	b, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, b)
}

func (h *BarangHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var b model.Barang
	if err := readJSON(ctx, &b); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	b.ID = id
	updated, err := h.svc.Update(ctx, &b)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *BarangHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, b)
}

func (h *BarangHandler) List(ctx *xhttp.RequestCtx) {
	var f model.BarangFilter

	if v := query(ctx, "q"); v != "" {
		f.Keyword = &v
	}
	if v := query(ctx, "aktif"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			f.Aktif = &b
		}
	}
	if v := query(ctx, "low_stock"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			f.LowStock = b
		}
	}
	if n, ok := queryInt(ctx, "limit"); ok {
		f.Limit = n
	}
	if n, ok := queryInt(ctx, "offset"); ok {
		f.Offset = n
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.Barang]{Items: items, Total: total})
}

func (h *BarangHandler) Deactivate(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Deactivate(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]bool{"ok": true})
}
