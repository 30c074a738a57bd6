package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Storage is the blob-store contract the loyalty services depend on:
// persist some bytes and get back a URL the frontend can load, plus the
// QR issuance variant that encodes a payload string first.
type Storage interface {
	Save(data []byte, folder, ext string) (string, error)
	IssueQR(payload, folder string) (string, error)
}

// LocalStorage writes assets under a local uploads directory and serves
// them through the static /uploads route.
type LocalStorage struct {
	Root    string // filesystem directory, e.g. "./uploads"
	BaseURL string // public prefix, e.g. "http://localhost:8080"
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalStorage) Save(data []byte, folder, ext string) (string, error) {
	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error al crear directorio de subida: %w", err)
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("error al guardar archivo: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.BaseURL, folder, filename), nil
}

// IssueQR encodes the payload as a PNG QR image with high error
// correction, matching the scannable-voucher contract.
func (s *LocalStorage) IssueQR(payload, folder string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.High, 256)
	if err != nil {
		return "", fmt.Errorf("error al generar código QR: %w", err)
	}
	return s.Save(png, folder, ".png")
}
