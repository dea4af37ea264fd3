package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"optica-store/internal/upload"
)

type UploadHandler struct {
	files *upload.Service
}

func NewUploadHandler(files *upload.Service) *UploadHandler {
	return &UploadHandler{files: files}
}

type uploadResponse struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type deleteRequest struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// SaveImage handles POST /api/upload/{producto|categoria}.
func (h *UploadHandler) SaveImage(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			respondError(w, http.StatusBadRequest, "formulario multipart inválido")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "archivo requerido")
			return
		}
		defer file.Close()

		path, name, err := h.files.SaveImage(kind, header.Filename, file)
		if err != nil {
			switch {
			case errors.Is(err, upload.ErrEmptyFile),
				errors.Is(err, upload.ErrTooLarge),
				errors.Is(err, upload.ErrUnsafePath):
				respondError(w, http.StatusBadRequest, err.Error())
			default:
				respondError(w, http.StatusInternalServerError, "no se pudo guardar la imagen")
			}
			return
		}

		respondJSON(w, http.StatusOK, uploadResponse{Path: path, Filename: name})
	}
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}
	if req.Path == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, "path y type requeridos")
		return
	}

	if err := h.files.Delete(req.Path, req.Type); err != nil {
		if errors.Is(err, upload.ErrUnknownKind) || errors.Is(err, upload.ErrUnsafePath) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "no se pudo eliminar la imagen")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *UploadHandler) UploadQR(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "formulario multipart inválido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "archivo requerido")
		return
	}
	defer file.Close()

	if err := h.files.SaveQR(header.Header.Get("Content-Type"), header.Size, file); err != nil {
		switch {
		case errors.Is(err, upload.ErrNotAnImage), errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrEmptyFile):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "no se pudo guardar el QR")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"path":    "/" + upload.QRFilename,
	})
}

func (h *UploadHandler) QRStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"exists": h.files.QRExists()})
}

func (h *UploadHandler) DeleteQR(w http.ResponseWriter, r *http.Request) {
	if err := h.files.DeleteQR(); err != nil {
		if errors.Is(err, upload.ErrQRNotPresent) {
			respondError(w, http.StatusNotFound, "no hay QR cargado")
			return
		}
		respondError(w, http.StatusInternalServerError, "no se pudo eliminar el QR")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
