package local_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invana/internal/domain"
	"invana/internal/port"
	"invana/internal/storage/local"
)

func TestLocalClient_UploadDownloadRoundtrip(t *testing.T) {
	client := local.NewLocalClient(t.TempDir())
	ctx := context.Background()

	err := client.Upload(ctx, port.UploadInput{
		Bucket:      "invana-docs",
		Key:         "documents/2024/invoice-1.pdf",
		Body:        bytes.NewReader([]byte("%PDF-1.4 content")),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	data, err := client.Download(ctx, "invana-docs", "documents/2024/invoice-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 content"), data)
}

func TestLocalClient_DownloadMissingKey(t *testing.T) {
	client := local.NewLocalClient(t.TempDir())

	_, err := client.Download(context.Background(), "invana-docs", "documents/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalClient_Delete(t *testing.T) {
	client := local.NewLocalClient(t.TempDir())
	ctx := context.Background()

	require.NoError(t, client.Upload(ctx, port.UploadInput{
		Bucket: "invana-docs",
		Key:    "documents/invoice-1.pdf",
		Body:   bytes.NewReader([]byte("data")),
	}))
	require.NoError(t, client.Delete(ctx, "invana-docs", "documents/invoice-1.pdf"))

	_, err := client.Download(ctx, "invana-docs", "documents/invoice-1.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalClient_DeleteMissingKeyIsNoop(t *testing.T) {
	client := local.NewLocalClient(t.TempDir())

	assert.NoError(t, client.Delete(context.Background(), "invana-docs", "documents/missing.pdf"))
}
