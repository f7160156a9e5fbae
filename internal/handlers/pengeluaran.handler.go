package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type PengeluaranService interface {
	Create(ctx context.Context, p *model.Pengeluaran) (*model.Pengeluaran, error)
	List(ctx context.Context, f model.PengeluaranFilter) ([]*model.Pengeluaran, int64, error)
}

type PengeluaranHandler struct {
	svc PengeluaranService
}

func NewPengeluaranHandler(svc PengeluaranService) *PengeluaranHandler {
	return &PengeluaranHandler{svc: svc}
}

func RegisterPengeluaranRoutes(e *router.Group, h *PengeluaranHandler) {
	e.POST("/pengeluaran", h.Create)
	e.GET("/pengeluaran", h.List)
}

func (h *PengeluaranHandler) Create(ctx *xhttp.RequestCtx) {
	var p model.Pengeluaran
	if err := readJSON(ctx, &p); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.svc.Create(ctx, &p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *PengeluaranHandler) List(ctx *xhttp.RequestCtx) {
	var f model.PengeluaranFilter
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
	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.Pengeluaran]{Items: items, Total: total})
}
