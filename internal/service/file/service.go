package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sekurindo/secops-backend-go/internal/pkg/storage"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

// MaxEvidenceSize caps uploaded evidence photos at 5MB.
const MaxEvidenceSize = 5 << 20

type FileService interface {
	// UploadPatrolEvidence stores a patrol evidence photo and returns the
	// storable path
	UploadPatrolEvidence(ctx context.Context, patrolID int64, file io.Reader, filename string, size int64) (string, error)

	// UploadIncidentPhoto stores an incident report photo
	UploadIncidentPhoto(ctx context.Context, reporterEmployeeID int64, file io.Reader, filename string, size int64) (string, error)

	// PublicURL builds the client-facing URL for a stored path
	PublicURL(path string) string

	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedExts = []string{".jpg", ".jpeg", ".png"}

func validateImage(filename string, size int64) (ext string, err error) {
	ext = strings.ToLower(filepath.Ext(filename))

	valid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return "", validator.ValidationErrors{{
			Field:   "file",
			Message: "only jpg, jpeg, png files are allowed",
		}}
	}

	if size > MaxEvidenceSize {
		return "", validator.ValidationErrors{{
			Field:   "file",
			Message: "file size must not exceed 5MB",
		}}
	}

	return ext, nil
}

func contentTypeFor(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}

// UploadPatrolEvidence stores evidence under patrols/<id>/<date>-<uuid><ext>.
func (s *fileServiceImpl) UploadPatrolEvidence(ctx context.Context, patrolID int64, file io.Reader, filename string, size int64) (string, error) {
	ext, err := validateImage(filename, size)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", time.Now().UTC().Format("20060102"), uuid.New().String(), ext)
	path := filepath.Join("patrols", fmt.Sprintf("%d", patrolID), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload patrol evidence: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadIncidentPhoto(ctx context.Context, reporterEmployeeID int64, file io.Reader, filename string, size int64) (string, error) {
	ext, err := validateImage(filename, size)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", time.Now().UTC().Format("20060102"), uuid.New().String(), ext)
	path := filepath.Join("incidents", fmt.Sprintf("%d", reporterEmployeeID), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload incident photo: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) PublicURL(path string) string {
	return s.storage.PublicURL(path)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
