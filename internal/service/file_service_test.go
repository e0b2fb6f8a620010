package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceagent/internal/config"
	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
	"invoiceagent/internal/service"
)

// createMultipartHeader creates a fake multipart file header for testing.
func createMultipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="invoices"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	return form.File["invoices"][0]
}

type recordingStorage struct {
	mu      sync.Mutex
	uploads []port.UploadInput
	err     error
}

func (r *recordingStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.uploads = append(r.uploads, input)
	return &port.UploadOutput{Location: "s3://test/" + input.Key}, nil
}

func (r *recordingStorage) Delete(context.Context, string, string) error { return nil }

func newFileService(t *testing.T, storage port.ObjectStorage, bucket string) service.FileService {
	t.Helper()
	return service.NewFileService(
		storage,
		&config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 1},
		&config.ArchiveConfig{Bucket: bucket},
	)
}

func TestFileService_SaveUpload_StagesFile(t *testing.T) {
	svc := newFileService(t, nil, "")
	header := createMultipartHeader(t, "factura.pdf", []byte("%PDF-1.4 test"))

	file, err := svc.SaveUpload(header)

	require.NoError(t, err)
	assert.Equal(t, "factura.pdf", file.Filename)
	assert.NotEqual(t, "factura.pdf", file.Path)

	data, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestFileService_SaveUpload_RejectsUnsupportedExtension(t *testing.T) {
	svc := newFileService(t, nil, "")
	header := createMultipartHeader(t, "notes.docx", []byte("hi"))

	_, err := svc.SaveUpload(header)

	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestFileService_SaveUpload_RejectsOversizedFile(t *testing.T) {
	svc := newFileService(t, nil, "")
	big := bytes.Repeat([]byte("a"), 2*1024*1024)
	header := createMultipartHeader(t, "big.pdf", big)

	_, err := svc.SaveUpload(header)

	assert.True(t, errors.Is(err, domain.ErrFileTooLarge))
}

func TestFileService_Cleanup_RemovesStagedFiles(t *testing.T) {
	svc := newFileService(t, nil, "")
	header := createMultipartHeader(t, "factura.pdf", []byte("%PDF-1.4"))

	file, err := svc.SaveUpload(header)
	require.NoError(t, err)

	svc.Cleanup([]domain.BatchFile{*file})

	_, statErr := os.Stat(file.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileService_Archive_UploadsToBucket(t *testing.T) {
	storage := &recordingStorage{}
	svc := newFileService(t, storage, "archive-bucket")
	header := createMultipartHeader(t, "factura.pdf", []byte("%PDF-1.4"))

	file, err := svc.SaveUpload(header)
	require.NoError(t, err)

	svc.Archive(context.Background(), *file)

	require.Len(t, storage.uploads, 1)
	assert.Equal(t, "archive-bucket", storage.uploads[0].Bucket)
	assert.Contains(t, storage.uploads[0].Key, "invoices/")
	assert.Equal(t, "application/pdf", storage.uploads[0].ContentType)
}

func TestFileService_Archive_DisabledWithoutBucket(t *testing.T) {
	storage := &recordingStorage{}
	svc := newFileService(t, storage, "")

	svc.Archive(context.Background(), domain.BatchFile{Filename: "a.pdf", Path: "/nope"})

	assert.Empty(t, storage.uploads)
}

func TestFileService_Archive_FailureIsSwallowed(t *testing.T) {
	storage := &recordingStorage{err: errors.New("bucket unavailable")}
	svc := newFileService(t, storage, "archive-bucket")
	header := createMultipartHeader(t, "factura.pdf", []byte("%PDF-1.4"))

	file, err := svc.SaveUpload(header)
	require.NoError(t, err)

	// Must not panic or affect anything.
	svc.Archive(context.Background(), *file)
	assert.Empty(t, storage.uploads)
}
