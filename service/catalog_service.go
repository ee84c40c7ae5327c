package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"fern-and-paper/logger"
	"fern-and-paper/models"
	"fern-and-paper/repository"
	"fern-and-paper/utils"
)

// productsPerPage is the catalog grid density (3x3).
const productsPerPage = 9

// CatalogService renders the product catalog as printable HTML and exports
// it to PDF through headless Chrome.
type CatalogService struct {
	productRepo repository.ProductRepositoryInterface
	baseURL     string // Base URL of this server, used as the render target
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(productRepo repository.ProductRepositoryInterface, baseURL string) *CatalogService {
	return &CatalogService{productRepo: productRepo, baseURL: baseURL}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// catalogEntry is one rendered product cell.
type catalogEntry struct {
	Name         string
	Category     string
	Image        string
	DisplayPrice string
	Rating       string
	NumReviews   int
}

// catalogPage is one printed page of the grid.
type catalogPage struct {
	Number  int
	Entries []catalogEntry
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
	body { font-family: Georgia, serif; margin: 0; color: #2f3b2f; }
	.page { width: 210mm; min-height: 297mm; padding: 14mm; box-sizing: border-box; page-break-after: always; }
	.page h1 { font-size: 20pt; border-bottom: 1px solid #2f3b2f; padding-bottom: 4mm; }
	.grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 8mm; }
	.cell { border: 1px solid #d8dcd4; padding: 4mm; text-align: center; }
	.cell img { width: 100%; height: 40mm; object-fit: cover; }
	.cell .name { font-size: 11pt; margin-top: 2mm; }
	.cell .category { font-size: 8pt; color: #7a8272; text-transform: uppercase; }
	.cell .price { font-size: 12pt; margin-top: 1mm; }
	.cell .rating { font-size: 8pt; color: #7a8272; }
</style>
</head>
<body>
{{range .}}
<div class="page">
	<h1>Fern &amp; Paper — Catalogue (page {{.Number}})</h1>
	<div class="grid">
	{{range .Entries}}
		<div class="cell">
			{{if .Image}}<img src="{{.Image}}" alt="{{.Name}}">{{end}}
			<div class="category">{{.Category}}</div>
			<div class="name">{{.Name}}</div>
			<div class="price">{{.DisplayPrice}}</div>
			<div class="rating">{{.Rating}} stars · {{.NumReviews}} reviews</div>
		</div>
	{{end}}
	</div>
</div>
{{end}}
</body>
</html>`))

// fetchAllProducts walks the paged catalog list until the last page.
func (s *CatalogService) fetchAllProducts(ctx context.Context) ([]models.Product, error) {
	var all []models.Product
	page := 1
	for {
		result, err := s.productRepo.List(ctx, repository.ProductListParams{Page: page})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Products...)
		if page >= result.Pages {
			break
		}
		page++
	}
	return all, nil
}

// RenderCatalogHTML renders every product into the printable grid, nine per
// page.
func (s *CatalogService) RenderCatalogHTML(ctx context.Context) (string, error) {
	products, err := s.fetchAllProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load catalog products: %w", err)
	}

	var pages []catalogPage
	for start := 0; start < len(products); start += productsPerPage {
		end := start + productsPerPage
		if end > len(products) {
			end = len(products)
		}

		entries := make([]catalogEntry, 0, end-start)
		for _, p := range products[start:end] {
			image := ""
			if len(p.Images) > 0 {
				image = p.Images[0]
			}
			entries = append(entries, catalogEntry{
				Name:         p.Name,
				Category:     p.Category,
				Image:        image,
				DisplayPrice: utils.FormatGBP(p.Price),
				Rating:       p.Rating.StringFixed(1),
				NumReviews:   p.NumReviews,
			})
		}
		pages = append(pages, catalogPage{Number: len(pages) + 1, Entries: entries})
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, pages); err != nil {
		return "", fmt.Errorf("failed to render catalog: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered catalog page through headless Chrome.
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/catalog/render", s.baseURL)
	logger.L.Infof("📄 Generating catalog PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm, margins live in the page CSS
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		logger.L.Errorf("❌ Error generating catalog PDF: %v", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.L.Infof("✓ Catalog PDF generated (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
