package controller

import (
	"net/http"

	"fern-and-paper/logger"
	"fern-and-paper/service"
)

// CatalogController handles printable catalog rendering and export
type CatalogController struct {
	catalog *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Render handles GET /admin/catalog/render
// Serves the printable HTML that the PDF exporter loads in headless Chrome
func (c *CatalogController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := c.catalog.RenderCatalogHTML(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// Export handles GET /api/admin/catalog/export (admin)
func (c *CatalogController) Export(w http.ResponseWriter, r *http.Request) {
	logger.L.Infof("📥 Export: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pdf, err := c.catalog.GeneratePDF(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogue.pdf"`)
	w.Write(pdf)
}
