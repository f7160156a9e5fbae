package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type KaryawanService interface {
	Create(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error)
	Update(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error)
	Get(ctx context.Context, id int64) (*model.Karyawan, error)
	List(ctx context.Context, f model.MitraFilter) ([]*model.Karyawan, int64, error)
	Pinjam(ctx context.Context, karyawanID int64, amount int64, note string) (*model.AdjustResult, error)
	BayarPinjaman(ctx context.Context, karyawanID int64, amount int64, note string) (*model.AdjustResult, error)
	EditPinjaman(ctx context.Context, entryID int64, newAmount int64) (*model.AdjustResult, error)
	RiwayatPinjaman(ctx context.Context, karyawanID int64, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error)
	CheckIn(ctx context.Context, a *model.Absensi) (*model.Absensi, error)
	ListAbsensi(ctx context.Context, karyawanID int64, bulan string) ([]*model.Absensi, error)
}

type KaryawanHandler struct {
	svc KaryawanService
}

func NewKaryawanHandler(svc KaryawanService) *KaryawanHandler {
	return &KaryawanHandler{svc: svc}
}

func RegisterKaryawanRoutes(e *router.Group, h *KaryawanHandler) {
	e.GET("/karyawan", h.List)
	e.GET("/karyawan/{id}", h.Get)
	e.POST("/karyawan", auth.RequireAdmin(h.Create))
	e.PUT("/karyawan/{id}", auth.RequireAdmin(h.Update))

	e.POST("/karyawan/{id}/pinjam", auth.RequireAdmin(h.Pinjam))
	e.POST("/karyawan/{id}/bayar", auth.RequireAdmin(h.BayarPinjaman))
	e.PUT("/karyawan/pinjaman/{entry_id}", auth.RequireAdmin(h.EditPinjaman))
	e.GET("/karyawan/{id}/pinjaman", h.RiwayatPinjaman)

	e.POST("/absensi", h.CheckIn)
	e.GET("/karyawan/{id}/absensi", h.ListAbsensi)
}

func (h *KaryawanHandler) Create(ctx *xhttp.RequestCtx) {
	var k model.Karyawan
	if err := readJSON(ctx, &k); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.svc.Create(ctx, &k)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *KaryawanHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var k model.Karyawan
	if err := readJSON(ctx, &k); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	k.ID = id
	updated, err := h.svc.Update(ctx, &k)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *KaryawanHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	k, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, k)
}

func (h *KaryawanHandler) List(ctx *xhttp.RequestCtx) {
	f := mitraFilter(ctx)
	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.Karyawan]{Items: items, Total: total})
}

type pinjamanRequest struct {
	Jumlah     int64  `json:"jumlah"`
	Keterangan string `json:"keterangan"`
}

func (h *KaryawanHandler) Pinjam(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req pinjamanRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	result, err := h.svc.Pinjam(ctx, id, req.Jumlah, req.Keterangan)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, result)
}

func (h *KaryawanHandler) BayarPinjaman(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req pinjamanRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	result, err := h.svc.BayarPinjaman(ctx, id, req.Jumlah, req.Keterangan)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, result)
}

func (h *KaryawanHandler) EditPinjaman(ctx *xhttp.RequestCtx) {
	entryID, err := pathInt64(ctx, "entry_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid entry id")
		return
	}
	var req pinjamanRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	result, err := h.svc.EditPinjaman(ctx, entryID, req.Jumlah)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, result)
}

func (h *KaryawanHandler) RiwayatPinjaman(ctx *xhttp.RequestCtx) {
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
	items, total, err := h.svc.RiwayatPinjaman(ctx, id, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listEnvelope[*model.LedgerEntry]{Items: items, Total: total})
}

func (h *KaryawanHandler) CheckIn(ctx *xhttp.RequestCtx) {
	var a model.Absensi
	if err := readJSON(ctx, &a); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.svc.CheckIn(ctx, &a)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *KaryawanHandler) ListAbsensi(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	rows, err := h.svc.ListAbsensi(ctx, id, query(ctx, "bulan"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}
