package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/jobtatkal/backend/config"
)

const resumeObjectPrefix = "resumes/"

// CloudStorageClient wraps Google Cloud Storage operations for resume files
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.ResumeBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// UploadResume uploads a resume file and returns the object name
func (c *CloudStorageClient) UploadResume(ctx context.Context, userID, fileName string, r io.Reader) (string, error) {
	objectName := fmt.Sprintf("%s%s/%d_%s", resumeObjectPrefix, userID, time.Now().Unix(), filepath.Base(fileName))

	writer := c.client.Bucket(c.bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = getContentType(fileName)

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write resume to bucket: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize resume upload: %w", err)
	}

	return objectName, nil
}

// DownloadResume reads a stored resume object
func (c *CloudStorageClient) DownloadResume(ctx context.Context, objectName string) ([]byte, error) {
	reader, err := c.client.Bucket(c.bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume object: %w", err)
	}
	return data, nil
}

// DeleteResume removes a stored resume object
func (c *CloudStorageClient) DeleteResume(ctx context.Context, objectName string) error {
	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete resume object: %w", err)
	}
	return nil
}

// GetSignedURL returns a time-limited download URL for a resume object
func (c *CloudStorageClient) GetSignedURL(objectName string, expiry time.Duration) (string, error) {
	url, err := c.client.Bucket(c.bucketName).SignedURL(objectName, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign resume URL: %w", err)
	}
	return url, nil
}

func getContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
