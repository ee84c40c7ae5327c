package controller

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"fern-and-paper/logger"
	"fern-and-paper/service"
)

// maxUploadSize caps product image uploads at 10 MB.
const maxUploadSize = 10 << 20

// Product photos are jpeg/png only.
var (
	allowedImageMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	}
	allowedImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
)

// UploadController handles product image upload and delivery
type UploadController struct {
	storage service.StorageServiceInterface
}

// NewUploadController creates a new UploadController
func NewUploadController(storage service.StorageServiceInterface) *UploadController {
	return &UploadController{storage: storage}
}

// Upload handles POST /api/upload (admin)
// Accepts a multipart form with an "image" field and stores it remotely
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	logger.L.Infof("📥 Upload: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedImageMimeTypes[strings.ToLower(mimeType)] {
		http.Error(w, fmt.Sprintf("Unsupported content type %s, images must be jpeg or png", mimeType), http.StatusBadRequest)
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); !allowedImageExtensions[ext] {
		http.Error(w, fmt.Sprintf("Unsupported file extension %s, images must be jpeg or png", ext), http.StatusBadRequest)
		return
	}

	uploaded, err := c.storage.Upload(r.Context(), header.Filename, mimeType, file)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Upload: stored %s as %s", header.Filename, uploaded.FileID)
	writeJSON(w, http.StatusOK, map[string]string{"imagePath": uploaded.URL})
}

// GetImage handles GET /api/images/{id}?size=thumb|medium
// Serves optimized product images through a local disk cache
func (c *UploadController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/images/"), "/")
	if fileID == "" {
		http.Error(w, "Missing image id", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "thumb"
	}
	if size != "thumb" && size != "medium" {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	cachePath := service.GetCachePath(fileID, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Write(data)
			return
		}
		logger.L.Infof("⚠️  Cache read failed for %s, refetching: %v", fileID, err)
	}

	raw, err := c.storage.Download(r.Context(), fileID)
	if err != nil {
		logger.L.Errorf("❌ GetImage: download failed for %s: %v", fileID, err)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := service.SaveToCache(cachePath, optimized); err != nil {
		logger.L.Infof("⚠️  Failed to cache image %s: %v", fileID, err)
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(optimized)
}
