package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/uploads"
	"github.com/MrSnakeDoc/sitecms/internal/utils"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 1 << 20

type uploadResponse struct {
	Success bool   `json:"success"`
	LogoURL string `json:"logoUrl"`
}

// UploadLogo accepts a multipart "file" part. The logo kind comes from the
// "logoType" query or form value and defaults to header.
func UploadLogo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MaxUploadSize > 0 {
			limit := d.MaxUploadSize + multipartMemory
			if r.ContentLength > limit {
				writeDetail(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeDetail(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
				return
			}
			writeDetail(w, http.StatusBadRequest, "Expected a multipart form with a file part")
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Missing file part")
			return
		}
		defer utils.Close(file)

		if d.MaxUploadSize > 0 && header.Size > d.MaxUploadSize {
			writeDetail(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}

		contentType := header.Header.Get("Content-Type")
		if !uploads.IsImage(contentType) {
			writeDetail(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}

		url, err := d.Logos.Upload(r.Context(), uploads.Upload{
			LogoType:    r.FormValue("logoType"),
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, uploadResponse{Success: true, LogoURL: url})
	}
}
