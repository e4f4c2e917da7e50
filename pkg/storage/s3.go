package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"go-talentmatch-backend/pkg/logger"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// resumeFolder namespaces raw resume objects inside the bucket
const resumeFolder = "resumes"

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// Config holds configuration for S3-compatible resume storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific endpoint override, e.g. "s3.ap-southeast-1.wasabisys.com"
	WasabiEndpoint string
}

// ResumeStore uploads raw resume files to S3-compatible object storage and
// hands back a durable URL plus the object key.
type ResumeStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewResumeStore creates the store. Supports both AWS S3 and Wasabi.
func NewResumeStore(ctx context.Context, cfg Config) (*ResumeStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	endpoint := cfg.WasabiEndpoint
	if cfg.Provider == ProviderWasabi && endpoint == "" {
		if ep, ok := WasabiEndpoints[cfg.Region]; ok {
			endpoint = ep
		} else {
			endpoint = "s3.ap-southeast-1.wasabisys.com"
		}
	}

	var client *s3.Client
	var baseURL string
	if cfg.Provider == ProviderWasabi {
		url := "https://" + endpoint
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &url
			o.UsePathStyle = true
		})
		baseURL = fmt.Sprintf("https://%s/%s", endpoint, cfg.Bucket)
	} else {
		client = s3.NewFromConfig(awsCfg)
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ResumeStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the file at localPath as an opaque binary object under the
// resumes/ folder and returns its URL and object key. The local file is
// removed only after the upload succeeded; on failure it is left in place so
// no state exists where the file is gone but no URL was produced.
func (s *ResumeStore) Upload(ctx context.Context, localPath, fileName string) (string, string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", "", fmt.Errorf("storage: open local file: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s_%s", resumeFolder, uuid.NewString(), filepath.Base(fileName))
	contentType := "application/octet-stream"

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("storage: put object: %w", err)
	}

	// Upload confirmed, the local copy is no longer needed
	f.Close()
	if err := os.Remove(localPath); err != nil {
		logger.Log.Warn("failed to remove local resume copy after upload",
			"path", localPath, "error", err)
	}

	return s.baseURL + "/" + key, key, nil
}
