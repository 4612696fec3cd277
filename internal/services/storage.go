package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

// StorageService persists generated assets (avatars, slide audio, slide
// images, exports) under a single data root on local disk. Keys are
// slash-separated relative paths; every segment is validated so a crafted
// key can never escape the root.
type StorageService interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Resolve(key string) (string, error)
	PublicURL(key string) string
	Root() string
}

type storageService struct {
	log  *logger.Logger
	root string
}

func NewStorageService(log *logger.Logger) (StorageService, error) {
	serviceLog := log.With("service", "StorageService")
	root := utils.GetEnv("DATA_ROOT", "datauser", serviceLog)
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("Failed to resolve data root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("Failed to create data root: %w", err)
	}
	serviceLog.Info("Local storage initialized", "root", abs)
	return &storageService{log: serviceLog, root: abs}, nil
}

func (ss *storageService) Save(ctx context.Context, key string, data []byte) (string, error) {
	abs, err := ss.Resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("Failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("Failed to write file: %w", err)
	}
	return ss.PublicURL(key), nil
}

func (ss *storageService) Read(ctx context.Context, key string) ([]byte, error) {
	abs, err := ss.Resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file: %w", err)
	}
	return data, nil
}

func (ss *storageService) Delete(ctx context.Context, key string) error {
	abs, err := ss.Resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Failed to delete file: %w", err)
	}
	return nil
}

// Resolve maps a storage key to an absolute path under the data root.
// Segments that are empty, a lone dot, contain "..", or carry a backslash
// are refused.
func (ss *storageService) Resolve(key string) (string, error) {
	segments := strings.Split(strings.Trim(key, "/"), "/")
	if len(segments) == 0 {
		return "", fmt.Errorf("Empty storage key")
	}
	for _, seg := range segments {
		if seg == "" || seg == "." || strings.Contains(seg, "..") || strings.ContainsAny(seg, `\`) {
			return "", fmt.Errorf("Invalid storage key segment: %q", seg)
		}
	}
	abs := filepath.Join(ss.root, filepath.Join(segments...))
	if abs != ss.root && !strings.HasPrefix(abs, ss.root+string(filepath.Separator)) {
		return "", fmt.Errorf("Storage key escapes data root: %q", key)
	}
	return abs, nil
}

func (ss *storageService) PublicURL(key string) string {
	return "/files/" + path.Clean(strings.Trim(key, "/"))
}

func (ss *storageService) Root() string {
	return ss.root
}
