package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type ReportService interface {
	Summary(ctx context.Context) (*model.SummaryReport, error)
	TopProducts(ctx context.Context, limit int) ([]*model.TopProduct, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler) {
	e.GET("/reports/summary", h.Summary)
	e.GET("/reports/top-products", h.TopProducts)
}

func (h *ReportHandler) Summary(ctx *xhttp.RequestCtx) {
	report, err := h.svc.Summary(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, report)
}

func (h *ReportHandler) TopProducts(ctx *xhttp.RequestCtx) {
	limit, _ := queryInt(ctx, "limit")
	products, err := h.svc.TopProducts(ctx, limit)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, products)
}
