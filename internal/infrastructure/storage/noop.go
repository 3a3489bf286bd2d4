package storage

import (
	"context"
	"errors"

	"github.com/ledgerline/backend/internal/application/importer"
)

// NoopObjectStorage discards objects. Used when no bucket is configured.
type NoopObjectStorage struct{}

var _ importer.ObjectStorage = NoopObjectStorage{}

// Put validates the key and discards the data
func (NoopObjectStorage) Put(_ context.Context, key string, _ []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	return nil
}
