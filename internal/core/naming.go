package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jo-hoe/gocollage/internal/backend/storage"
)

const (
	exportPrefix      = "collage_"
	maxNameAttempts   = 5
	collisionTokenLen = 8
)

// nameFunc builds a file name from a timestamp and an optional collision token.
type nameFunc func(timestamp, token string) string

func uploadName(originalName string) nameFunc {
	return func(timestamp, token string) string {
		if token == "" {
			return timestamp + "_" + originalName
		}
		return timestamp + "_" + token + "_" + originalName
	}
}

func exportName(format string) nameFunc {
	return func(timestamp, token string) string {
		if token == "" {
			return exportPrefix + timestamp + "." + format
		}
		return exportPrefix + timestamp + "_" + token + "." + format
	}
}

func timestampString(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func collisionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:collisionTokenLen]
}

// sanitizeFilename reduces a client supplied filename to its base name.
func sanitizeFilename(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(strings.TrimSpace(name))
	if err := storage.ValidateName(base); err != nil {
		return "", err
	}
	return base, nil
}

// writeUnique claims a name in the registry and writes content under it.
// The plain name is tried first; on any collision a random token is added.
func (service *CoreService) writeUnique(ctx context.Context, build nameFunc, content []byte) (*StoredFile, error) {
	timestamp := timestampString(service.now())

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		token := ""
		if attempt > 0 {
			token = collisionToken()
		}
		name := build(timestamp, token)

		ok, err := service.registry.Reserve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve file name: %w", err)
		}
		if !ok {
			slog.Debug("file name already reserved, retrying", "name", name, "attempt", attempt)
			continue
		}

		path, size, err := service.store.Create(name, bytes.NewReader(content))
		if errors.Is(err, storage.ErrExists) {
			slog.Debug("file already exists on disk, retrying", "name", name, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return &StoredFile{Name: name, Path: path, Size: size}, nil
	}

	return nil, fmt.Errorf("failed to find a free file name after %d attempts", maxNameAttempts)
}
