// internal/storage/storage.go
// Binary media storage: S3 when configured, local directory otherwise.
// Objects are publicly readable; the returned URL goes straight into the
// posts/advertisements rows.

package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Errors returned by upload validation
var (
	ErrFileTooLarge   = fmt.Errorf("file size exceeds maximum")
	ErrTypeNotAllowed = fmt.Errorf("file type not allowed")
)

// Extensions the product accepts for posts and ads
var allowedExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Config holds storage configuration
type Config struct {
	UseS3          bool
	S3Bucket       string
	AWSRegion      string
	LocalUploadDir string
	BaseURL        string
	MaxFileSize    int64
}

// Service uploads and deletes media objects
type Service struct {
	s3Client    *s3.S3
	bucketName  string
	baseURL     string
	uploadDir   string
	useS3       bool
	maxFileSize int64
}

// NewService creates a storage service. With UseS3 off it stores files under
// LocalUploadDir and serves them from /uploads.
func NewService(config Config) (*Service, error) {
	svc := &Service{
		bucketName:  config.S3Bucket,
		baseURL:     config.BaseURL,
		uploadDir:   config.LocalUploadDir,
		useS3:       config.UseS3,
		maxFileSize: config.MaxFileSize,
	}

	if config.UseS3 {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(config.AWSRegion),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	} else {
		if err := os.MkdirAll(config.LocalUploadDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	return svc, nil
}

// AllowedFile reports whether the filename's extension is accepted
func AllowedFile(filename string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}

// MediaTypeFor derives "video" or "image" from a filename
func MediaTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov":
		return "video"
	default:
		return "image"
	}
}

// UploadFile stores the file under the given key prefix and returns its
// public URL. The generated object name is <prefix>_<uuid>_<unix>.<ext>.
func (s *Service) UploadFile(file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if err := s.validateFile(header); err != nil {
		return "", err
	}

	filename := generateFilename(header.Filename, prefix)

	if s.useS3 {
		return s.uploadToS3(file, filename, header)
	}
	return s.uploadToLocal(file, filename)
}

func (s *Service) uploadToS3(file multipart.File, filename string, header *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:             aws.String(s.bucketName),
		Key:                aws.String(filename),
		Body:               bytes.NewReader(buffer.Bytes()),
		ContentType:        aws.String(header.Header.Get("Content-Type")),
		ContentDisposition: aws.String("inline"),
		ACL:                aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucketName, filename), nil
}

func (s *Service) uploadToLocal(file multipart.File, filename string) (string, error) {
	destPath := filepath.Join(s.uploadDir, filename)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, filepath.ToSlash(filename)), nil
}

// DeleteFile removes the object behind a previously returned URL
func (s *Service) DeleteFile(fileURL string) error {
	if s.useS3 {
		return s.deleteFromS3(fileURL)
	}
	return s.deleteFromLocal(fileURL)
}

func (s *Service) deleteFromS3(fileURL string) error {
	key := strings.TrimPrefix(fileURL, fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucketName))
	// Strip any signed-URL query noise
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *Service) deleteFromLocal(fileURL string) error {
	urlPath := strings.TrimPrefix(fileURL, s.baseURL)
	localPath := filepath.Join(s.uploadDir, strings.TrimPrefix(urlPath, "/uploads/"))
	return os.Remove(localPath)
}

func (s *Service) validateFile(header *multipart.FileHeader) error {
	if s.maxFileSize > 0 && header.Size > s.maxFileSize {
		return ErrFileTooLarge
	}
	if !AllowedFile(header.Filename) {
		return ErrTypeNotAllowed
	}
	return nil
}

func generateFilename(originalName, prefix string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s_%s_%d%s", prefix, prefix, uuid.New().String(), time.Now().Unix(), ext)
}
