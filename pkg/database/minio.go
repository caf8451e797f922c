package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOEndpoint save minio endpoint
var MinIOEndpoint string

// MinIOClientRepo definition minio operations used by the usecases
type MinIOClientRepo interface {
	UploadStream(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) error
	RemoveObject(ctx context.Context, objectName string) error
	PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// MinIOClient definition minio client
type MinIOClient struct {
	Client     *minio.Client
	BucketName string
}

// NewMinIOConnection create a new minio connection with retry
func NewMinIOConnection(d MinIOConnection) (*MinIOClient, error) {
	var mc *MinIOClient
	var err error

	for i := 1; i <= d.RetryCount; i++ {
		mc, err = NewMinioClient(d.Endpoint, d.User, d.Password, d.BucketName, d.UseSSL)
		if err == nil {
			MinIOEndpoint = d.Endpoint
			log.Printf("minIO[%s] connected (attempt %d)", d.Endpoint, i)
			return mc, nil
		}

		log.Printf("minIO[%s] connect failed (attempt %d/%d): %v", d.Endpoint, i, d.RetryCount, err)
		time.Sleep(d.RetryInterval)
	}

	return mc, err
}

// NewMinioClient create a new minio client, creating the bucket when missing
func NewMinioClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	minioClient, err := minio.New(endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, fmt.Errorf("minio init failed: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket [%s] failed: %v", bucketName, err)
	}

	if !exists {
		if err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket [%s] failed: %v", bucketName, err)
		}
		log.Printf("Bucket [%s] created", bucketName)
	}

	return &MinIOClient{
		Client:     minioClient,
		BucketName: bucketName,
	}, nil
}

// UploadStream upload an object from a reader, used for image uploads
func (m *MinIOClient) UploadStream(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) error {
	_, err := m.Client.PutObject(ctx, m.BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// RemoveObject delete an object
func (m *MinIOClient) RemoveObject(ctx context.Context, objectName string) error {
	return m.Client.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
}

// PresignGetURL build a presigned URL for an object
func (m *MinIOClient) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.Client.PresignedGetObject(ctx, m.BucketName, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("presign URL failed: %w", err)
	}
	return presignedURL.String(), nil
}
