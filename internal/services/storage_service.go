// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/omsmarine/vims-backend/internal/config"
)

// StorageService archives uploaded quotation source spreadsheets to S3, so
// a generated quotation can always be traced back to the file it came from.
// Without AWS credentials it degrades to a no-op for local development.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type ArchiveResult struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

var allowedSpreadsheetExts = []string{".xlsx", ".xlsm", ".xls"}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// No credentials: run without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// ValidateSpreadsheet checks extension and size before the file is parsed.
func (s *StorageService) ValidateSpreadsheet(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, candidate := range allowedSpreadsheetExts {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("file type %s is not allowed", ext)
	}

	maxSize := s.config.Upload.MaxFileSizeMB * 1024 * 1024
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", size, maxSize)
	}
	return nil
}

// ArchiveSpreadsheet stores the raw upload under quotation-sources/. A
// missing S3 client is not an error; the upload flow works without archival.
func (s *StorageService) ArchiveSpreadsheet(filename string, content []byte) (*ArchiveResult, error) {
	key := fmt.Sprintf("quotation-sources/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(filename)))

	if s.s3Client == nil {
		logrus.WithField("file", filename).Debug("S3 not configured, skipping spreadsheet archival")
		return &ArchiveResult{Key: key, Size: int64(len(content))}, nil
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &ArchiveResult{Key: key, Size: int64(len(content))}, nil
}
