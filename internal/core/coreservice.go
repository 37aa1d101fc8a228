package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jo-hoe/gocollage/internal/backend/imageinfo"
	"github.com/jo-hoe/gocollage/internal/backend/registry"
	"github.com/jo-hoe/gocollage/internal/backend/storage"
)

const DefaultExportFormat = "png"

// StoredFile is a file written into the upload directory.
type StoredFile struct {
	Name string
	Path string
	Size int64
}

type CoreService struct {
	config   *ServiceConfig
	store    *storage.FileStore
	registry registry.Registry
	now      func() time.Time
}

func NewCoreService(ctx context.Context, config *ServiceConfig) (*CoreService, error) {
	store, err := storage.NewFileStore(config.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload directory: %w", err)
	}
	slog.Info("upload directory ready", "path", store.Root())

	nameRegistry, err := registry.New(ctx,
		config.NameRegistry.Type,
		config.NameRegistry.ConnectionString,
		config.NameRegistry.TTL)
	if err != nil {
		return nil, err
	}

	return &CoreService{
		config:   config,
		store:    store,
		registry: nameRegistry,
		now:      time.Now,
	}, nil
}

// SaveUpload writes the uploaded content verbatim as {timestamp}_{originalName}.
func (service *CoreService) SaveUpload(ctx context.Context, originalName string, content io.Reader) (*StoredFile, error) {
	filename, err := sanitizeFilename(originalName)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	stored, err := service.writeUnique(ctx, uploadName(filename), data)
	if err != nil {
		return nil, fmt.Errorf("failed to save uploaded file %s: %w", filename, err)
	}

	service.logStored("upload saved", stored, data)
	return stored, nil
}

// SaveExport decodes imageData and writes it as collage_{timestamp}.{format}.
func (service *CoreService) SaveExport(ctx context.Context, imageData, format string) (*StoredFile, error) {
	if format == "" {
		format = DefaultExportFormat
	}
	if err := storage.ValidateName(format); err != nil {
		return nil, fmt.Errorf("invalid export format: %w", err)
	}

	data, err := DecodeImageData(imageData)
	if err != nil {
		return nil, err
	}

	stored, err := service.writeUnique(ctx, exportName(format), data)
	if err != nil {
		return nil, fmt.Errorf("failed to save exported collage: %w", err)
	}

	service.logStored("collage exported", stored, data)
	return stored, nil
}

// Open re-opens a stored file for streaming.
func (service *CoreService) Open(file *StoredFile) (*os.File, error) {
	return service.store.Open(file.Name)
}

func (service *CoreService) Close() error {
	if service.registry == nil {
		return nil
	}
	return service.registry.Close()
}

func (service *CoreService) logStored(msg string, stored *StoredFile, data []byte) {
	attrs := []any{"name", stored.Name, "path", stored.Path, "size_bytes", stored.Size}
	if info, err := imageinfo.Probe(data); err == nil {
		attrs = append(attrs, "format", info.Format, "width", info.Width, "height", info.Height)
	} else {
		attrs = append(attrs, "probe_error", err)
	}
	slog.Info(msg, attrs...)
}
