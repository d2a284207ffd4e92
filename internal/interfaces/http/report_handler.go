package http

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/report"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/export"
)

// PDFFileName nombre del informe PDF descargado.
const PDFFileName = "relatorio_producao_espumas.pdf"

// ReportPDFGenerator genera el informe PDF de producción.
type ReportPDFGenerator interface {
	GenerateProductionReport(ctx context.Context, d *dto.DashboardResponse, generatedAt time.Time) ([]byte, error)
}

// ReportHandler dashboard de producción y exportaciones (protegido).
type ReportHandler struct {
	uc  *report.DashboardUseCase
	pdf ReportPDFGenerator
}

// NewReportHandler construye el handler. pdf puede ser nil (endpoint PDF responde 501).
func NewReportHandler(uc *report.DashboardUseCase, pdf ReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

func dashboardRequest(c *fiber.Ctx) (dto.DashboardRequest, error) {
	var req dto.DashboardRequest
	err := c.QueryParser(&req)
	return req, err
}

func attachment(c *fiber.Ctx, contentType, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(body)
}

// Dashboard godoc
// @Summary      Dashboard de producción
// @Description  KPIs, consumo por componente, tendencia y tabla de blocos filtrados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        foam_type   query  string  false  "tipo de espuma (Todos = todos)"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive"
// @Param        bucket      query  string  false  "dia | semana | mes"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	req, err := dashboardRequest(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.Build(c.Context(), req)
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// CSV godoc
// @Summary      Exportar blocos a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        foam_type   query  string  false  "tipo de espuma"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        latin1      query  bool    false  "codificar en ISO-8859-1"
// @Success      200  {file}  file
// @Router       /api/reports/batches.csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	req, err := dashboardRequest(c)
	if err != nil {
		return badBody(c)
	}
	rows, err := h.uc.FilteredBatches(c.Context(), req)
	if err != nil {
		return fail(c, err, "")
	}
	latin1 := c.QueryBool("latin1", false)
	var buf bytes.Buffer
	if err := export.WriteBatchesCSV(&buf, rows, latin1); err != nil {
		return fail(c, err, "")
	}
	contentType := "text/csv; charset=utf-8"
	if latin1 {
		contentType = "text/csv; charset=iso-8859-1"
	}
	return attachment(c, contentType, export.CSVFileName, buf.Bytes())
}

// XLSX godoc
// @Summary      Exportar blocos a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        foam_type   query  string  false  "tipo de espuma"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/reports/batches.xlsx [get]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	req, err := dashboardRequest(c)
	if err != nil {
		return badBody(c)
	}
	d, err := h.uc.Build(c.Context(), req)
	if err != nil {
		return fail(c, err, "")
	}
	var buf bytes.Buffer
	if err := export.WriteBatchesXLSX(&buf, d.Batches, d.ByComponent); err != nil {
		return fail(c, err, "")
	}
	return attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSXFileName, buf.Bytes())
}

// PDF godoc
// @Summary      Informe PDF de producción
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        foam_type   query  string  false  "tipo de espuma"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/reports/batches.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return respondError(c, fiber.StatusNotImplemented, "NOT_CONFIGURED", "generador PDF no configurado")
	}
	req, err := dashboardRequest(c)
	if err != nil {
		return badBody(c)
	}
	d, err := h.uc.Build(c.Context(), req)
	if err != nil {
		return fail(c, err, "")
	}
	body, err := h.pdf.GenerateProductionReport(c.Context(), d, time.Now())
	if err != nil {
		return fail(c, err, "")
	}
	return attachment(c, "application/pdf", PDFFileName, body)
}
