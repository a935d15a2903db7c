// Package storage persists uploaded profile images, keyed by the owning
// account's public id. The core treats it as an external collaborator; the
// filesystem backend mirrors the historical layout, the S3 backend is for
// deployments without a persistent disk.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports that no image is stored under the given id.
var ErrNotFound = errors.New("image not found")

// ImageStore stores and retrieves raw image bytes. No size or content-type
// validation happens here; the upload endpoint accepts the body as-is.
type ImageStore interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
}
