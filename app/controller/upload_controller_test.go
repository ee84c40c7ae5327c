package controller

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fern-and-paper/service"
)

type stubStorage struct {
	uploads  int
	lastMime string
}

func (s *stubStorage) Upload(ctx context.Context, name, mimeType string, content io.Reader) (*service.UploadedFile, error) {
	s.uploads++
	s.lastMime = mimeType
	return &service.UploadedFile{FileID: "f1", URL: "https://drive.google.com/uc?id=f1"}, nil
}

func (s *stubStorage) Download(ctx context.Context, fileID string) ([]byte, error) {
	return nil, nil
}

func multipartImage(t *testing.T, filename, mimeType string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestUploadAcceptsJpegAndPng(t *testing.T) {
	for _, tt := range []struct {
		filename string
		mimeType string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"photo.png", "image/png"},
	} {
		storage := &stubStorage{}
		controller := NewUploadController(storage)

		body, contentType := multipartImage(t, tt.filename, tt.mimeType)
		r := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		controller.Upload(w, r)

		assert.Equal(t, http.StatusOK, w.Code, "file %s", tt.filename)
		assert.Equal(t, 1, storage.uploads)
		assert.Contains(t, w.Body.String(), "imagePath")
	}
}

func TestUploadRejectsUnsupportedImageTypes(t *testing.T) {
	for _, tt := range []struct {
		name     string
		filename string
		mimeType string
	}{
		{"gif mime", "photo.gif", "image/gif"},
		{"webp mime", "photo.webp", "image/webp"},
		{"svg mime", "photo.svg", "image/svg+xml"},
		{"png mime with gif extension", "photo.gif", "image/png"},
		{"non image mime", "notes.txt", "text/plain"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			storage := &stubStorage{}
			controller := NewUploadController(storage)

			body, contentType := multipartImage(t, tt.filename, tt.mimeType)
			r := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			r.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			controller.Upload(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, storage.uploads, "rejected upload must never reach storage")
		})
	}
}
