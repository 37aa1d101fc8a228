package backend

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/gocollage/internal/backend/storage"
	"github.com/jo-hoe/gocollage/internal/common"
	"github.com/jo-hoe/gocollage/internal/core"
	"github.com/labstack/echo/v4"
)

const (
	PingRoute   = "/ping"
	UploadRoute = "/upload"
	ExportRoute = "/export"

	uploadFormField = "file"
)

type APIService struct {
	coreService *core.CoreService
}

type PingResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	Filename  string `json:"filename"`
	SavedPath string `json:"saved_path"`
}

type ExportRequest struct {
	ImageData string `form:"image_data" validate:"required"`
	Format    string `form:"format" validate:"required,alphanum,max=10"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET(PingRoute, s.pingHandler)
	e.POST(UploadRoute, s.uploadHandler)
	e.POST(ExportRoute, s.exportHandler)
}

func (s *APIService) pingHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

func (s *APIService) uploadHandler(ctx echo.Context) error {
	file, err := ctx.FormFile(uploadFormField)
	if err != nil {
		slog.Warn("uploadHandler: missing uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to get uploaded file")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("uploadHandler: failed to open uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("uploadHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	stored, err := s.coreService.SaveUpload(ctx.Request().Context(), file.Filename, src)
	if errors.Is(err, storage.ErrInvalidName) {
		slog.Warn("uploadHandler: rejected file name",
			"status", http.StatusBadRequest, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file name")
	}
	if err != nil {
		slog.Error("uploadHandler: failed to save uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save uploaded file")
	}

	return ctx.JSON(http.StatusOK, UploadResponse{
		Filename:  file.Filename,
		SavedPath: stored.Path,
	})
}

func (s *APIService) exportHandler(ctx echo.Context) error {
	request := ExportRequest{Format: core.DefaultExportFormat}
	if err := ctx.Bind(&request); err != nil {
		slog.Warn("exportHandler: failed to bind request",
			"status", http.StatusBadRequest, "error", err)
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: common.ErrorMessage(err)})
	}
	if request.Format == "" {
		request.Format = core.DefaultExportFormat
	}
	if err := ctx.Validate(&request); err != nil {
		slog.Warn("exportHandler: invalid request",
			"status", http.StatusBadRequest, "error", err, "format", request.Format)
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: common.ErrorMessage(err)})
	}

	stored, err := s.coreService.SaveExport(ctx.Request().Context(), request.ImageData, request.Format)
	if errors.Is(err, core.ErrEmptyImageData) || errors.Is(err, storage.ErrInvalidName) {
		slog.Warn("exportHandler: rejected image data",
			"status", http.StatusBadRequest, "error", err, "format", request.Format)
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		slog.Error("exportHandler: failed to export collage",
			"status", http.StatusInternalServerError, "error", err, "format", request.Format)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	f, err := s.coreService.Open(stored)
	if err != nil {
		slog.Error("exportHandler: failed to reopen exported collage",
			"status", http.StatusInternalServerError, "error", err, "path", stored.Path)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("exportHandler: failed to close exported collage", "error", cerr, "path", stored.Path)
		}
	}()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+stored.Name)
	return ctx.Stream(http.StatusOK, "image/"+request.Format, f)
}
