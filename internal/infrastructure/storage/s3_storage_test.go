package storage

import (
	"context"
	"testing"

	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half of the credentials returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{Bucket: "imports", AccessKeyID: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, &config.StorageConfig{
			Bucket:          "imports",
			Endpoint:        "http://localhost:9000",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			UsePathStyle:    true,
			Prefix:          "/customers/",
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "imports", s.Bucket())
		assert.Equal(t, "customers/2024/file.csv", s.objectKey("2024/file.csv"))
	})
}

func TestS3ObjectStorage_PutRequiresKey(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), &config.StorageConfig{
		Bucket:          "imports",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	err = s.Put(context.Background(), "", []byte("x"), "text/csv")
	require.Error(t, err)
	assert.Equal(t, "a.csv", s.objectKey("a.csv"), "no prefix configured")
}

func TestNoopObjectStorage(t *testing.T) {
	var s NoopObjectStorage
	assert.NoError(t, s.Put(context.Background(), "a.csv", []byte("x"), "text/csv"))
	assert.Error(t, s.Put(context.Background(), "", nil, ""))
}
