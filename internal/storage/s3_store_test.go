package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
)

func TestS3StorePresignGet(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewS3Store(ctx, storage.S3Options{
		Bucket:    "notas-fiscais",
		Region:    "sa-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	url, err := store.PresignGet(ctx, "u1/1718900000123.pdf", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/notas-fiscais/u1/1718900000123.pdf")
	assert.Contains(t, url, "X-Amz-Expires=3600")

	_, err = store.PresignGet(ctx, "../x", time.Hour)
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}
