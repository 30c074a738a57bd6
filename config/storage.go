package config

import (
	"os"

	"github.com/fidelity-club/fidelity-be/storage"
)

// Global blob store used for coupon images, avatars and QR assets.
var Store storage.Storage

// InitializeStorage wires the local uploads directory as the blob store.
func InitializeStorage() {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	Store = storage.NewLocalStorage(root, baseURL)
}
