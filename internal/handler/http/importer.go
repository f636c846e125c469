package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
)

const maxUploadSize = 10 << 20

type ImportHandler interface {
	// ImportXLSX handles POST /imports/xlsx with a multipart "file" field
	ImportXLSX(w http.ResponseWriter, r *http.Request)
	// ImportSheet handles POST /imports/sheets
	ImportSheet(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importerService importer.ImporterService
}

func NewImportHandler(importerService importer.ImporterService) ImportHandler {
	return &importHandlerImpl{importerService: importerService}
}

func (h *importHandlerImpl) ImportXLSX(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	result, err := h.importerService.ImportXLSX(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *importHandlerImpl) ImportSheet(w http.ResponseWriter, r *http.Request) {
	result, err := h.importerService.ImportSheet(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
