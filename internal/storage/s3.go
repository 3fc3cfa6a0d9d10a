package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"userorders/internal/keys"
	"userorders/internal/models"
)

// S3Options configures the connection to an S3-compatible endpoint.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// S3UserStore keeps each user as a JSON object under keys.User(id).
type S3UserStore struct {
	client *minio.Client
	bucket string
}

// NewS3UserStore connects to the MinIO/S3 endpoint described by opts.
func NewS3UserStore(opts S3Options) (*S3UserStore, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("s3 user store: endpoint, access key, secret key and bucket are required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", opts.Endpoint)
	return &S3UserStore{client: client, bucket: opts.Bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *S3UserStore) EnsureBucket(ctx context.Context, location string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location})
}

func (s *S3UserStore) FindUserByID(ctx context.Context, id string) (models.User, bool, error) {
	object, err := s.client.GetObject(ctx, s.bucket, keys.User(id), minio.GetObjectOptions{})
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	// GetObject is lazy: a missing key only surfaces once the body is read.
	var user models.User
	if err := json.NewDecoder(object).Decode(&user); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return user, true, nil
}

func (s *S3UserStore) SaveUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user to JSON: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		keys.User(user.ID),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}
	return nil
}
