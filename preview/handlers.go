package preview

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"planora/plan"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func shareURL(planID string) string {
	base := os.Getenv("SHARE_BASE_URL")
	if base == "" {
		base = "http://localhost:4000"
	}
	return fmt.Sprintf("%s/plans/%s/preview", base, planID)
}

// GET /api/plans/:planid/preview
func GetPlanPreviewHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, list, err := plan.LoadPlan(ctx, ps.ByName("planid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Build(p, list))
}

// GET /api/plans/:planid/qr
func PlanQRHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, _, err := plan.LoadPlan(ctx, planID); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	png, err := qrcode.Encode(shareURL(planID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GET /api/plans/:planid/pdf
func PrintPlanHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p, list, err := plan.LoadPlan(ctx, planID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	pv := Build(p, list)

	qrPNG, err := qrcode.Encode(shareURL(planID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, pv.Name)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Days: %d", pv.Summary.TotalDays))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total cost: %.2f", pv.Summary.TotalCost))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	for _, day := range pv.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d: %s", day.Day, day.Title))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, loc := range day.Locations {
			label := loc.Name
			if loc.Type != "" {
				label = fmt.Sprintf("%s (%s)", loc.Name, loc.Type)
			}
			pdf.Cell(0, 8, label)
			pdf.Ln(6)
		}
		pdf.Cell(0, 8, fmt.Sprintf("Day cost: %.2f", day.Cost))
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=plan-"+planID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
