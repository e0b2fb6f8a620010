package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"invoiceagent/internal/config"
	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
)

// FileService manages the lifecycle of uploaded invoice files: staging them
// to local disk for processing, optionally archiving them to object storage,
// and removing them afterwards.
type FileService interface {
	SaveUpload(header *multipart.FileHeader) (*domain.BatchFile, error)
	Archive(ctx context.Context, file domain.BatchFile)
	Cleanup(files []domain.BatchFile)
}

type fileService struct {
	storage port.ObjectStorage
	upload  *config.UploadConfig
	archive *config.ArchiveConfig
}

// NewFileService creates a new FileService implementation. storage may be nil
// when archiving is disabled.
func NewFileService(storage port.ObjectStorage, upload *config.UploadConfig, archive *config.ArchiveConfig) FileService {
	return &fileService{
		storage: storage,
		upload:  upload,
		archive: archive,
	}
}

// SaveUpload validates the uploaded file and stages it under the upload
// directory with a unique name, keeping the original extension.
func (s *fileService) SaveUpload(header *multipart.FileHeader) (*domain.BatchFile, error) {
	ext := domain.ExtensionOf(header.Filename)
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, header.Filename)
	}

	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileTooLarge, header.Filename)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	path := filepath.Join(s.upload.Dir, uuid.New().String()+"."+ext)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("staging upload %s: %w", header.Filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing upload %s: %w", header.Filename, err)
	}

	return &domain.BatchFile{Filename: header.Filename, Path: path}, nil
}

// Archive copies a processed upload into the archive bucket. Failures are
// logged and swallowed: archiving never affects the processing outcome.
func (s *fileService) Archive(ctx context.Context, file domain.BatchFile) {
	if s.storage == nil || s.archive.Bucket == "" {
		return
	}

	f, err := os.Open(file.Path)
	if err != nil {
		log.Printf("fileService.Archive: cannot open %s: %v", file.Filename, err)
		return
	}
	defer f.Close()

	key := fmt.Sprintf("invoices/%s/%s", time.Now().UTC().Format("2006-01-02"), filepath.Base(file.Path))
	contentType := mime.TypeByExtension(filepath.Ext(file.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archive.Bucket,
		Key:         key,
		Body:        f,
		ContentType: contentType,
	}); err != nil {
		log.Printf("fileService.Archive: upload failed for %s: %v", file.Filename, err)
		return
	}
	log.Printf("fileService.Archive: archived %s as %s", file.Filename, key)
}

// Cleanup removes staged files from the upload directory.
func (s *fileService) Cleanup(files []domain.BatchFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("fileService.Cleanup: removing %s: %v", f.Path, err)
		}
	}
}
