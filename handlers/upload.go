package handlers

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxImagesPerRequest = 20

// UploadImage stores a single image and returns its public URL path.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	fileURL, err := h.storeUpload(file, header)
	if err != nil {
		log.Printf("UploadImage: failed to store %s: %v", header.Filename, err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(fileURL))
}

// UploadFiles stores an image set (capped at 20) plus an optional PDF and
// returns their URLs together with the logo-detection stub output.
func (h *Handler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	images := r.MultipartForm.File["images"]
	if len(images) > maxImagesPerRequest {
		writeError(w, http.StatusBadRequest, "up to 20 images can be uploaded at once")
		return
	}

	imageURLs := []string{}
	for _, header := range images {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to read file")
			return
		}
		fileURL, err := h.storeUpload(file, header)
		file.Close()
		if err != nil {
			log.Printf("UploadFiles: failed to store %s: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, "failed to store file")
			return
		}
		imageURLs = append(imageURLs, fileURL)
	}

	var pdfURL *string
	if pdfs := r.MultipartForm.File["pdf"]; len(pdfs) > 0 {
		file, err := pdfs[0].Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to read file")
			return
		}
		stored, err := h.storeUpload(file, pdfs[0])
		file.Close()
		if err != nil {
			log.Printf("UploadFiles: failed to store %s: %v", pdfs[0].Filename, err)
			writeError(w, http.StatusInternalServerError, "failed to store file")
			return
		}
		pdfURL = &stored
	}

	result := map[string]interface{}{
		"imageUrls": imageURLs,
		"pdfUrl":    pdfURL,
		"logoModel": "yolov8n-custom-stub",
	}
	if tags := detectLogoHashtags(imageURLs); len(tags) > 0 {
		result["autoHashtags"] = tags
	}

	writeJSON(w, http.StatusOK, result)
}

// storeUpload writes the file under the upload directory with a random
// name that keeps the original extension.
func (h *Handler) storeUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	name := id + filepath.Ext(header.Filename)

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/uploads/" + url.PathEscape(name), nil
}

// detectLogoHashtags is a placeholder for a real image-classification
// model: it only inspects filenames, never file contents.
func detectLogoHashtags(imageURLs []string) []string {
	if len(imageURLs) == 0 {
		return nil
	}

	foundLogo := false
	for _, u := range imageURLs {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "logo") || strings.Contains(lower, "brand") {
			foundLogo = true
			break
		}
	}

	if foundLogo {
		return []string{"#LogoDetected", "#AutoTag", "#YOLOv8nStub"}
	}
	return []string{"#NoLogoFound", "#PlaceholderTag"}
}
