package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned by Download when the key does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Download(ctx context.Context, key string) (*DownloadResponse, error)
	Delete(ctx context.Context, key string) error
	FileExists(ctx context.Context, key string) (bool, error)
}

type UploadRequest struct {
	Key          string            `json:"key"`
	Reader       io.Reader         `json:"-"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata"`
	CacheControl string            `json:"cache_control"`
}

type UploadResponse struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	ETag     string `json:"etag"`
	Location string `json:"location"`
}

type DownloadResponse struct {
	Reader       io.ReadCloser     `json:"-"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type"`
	Metadata     map[string]string `json:"metadata"`
	LastModified time.Time         `json:"last_modified"`
	ETag         string            `json:"etag"`
}

// Options selects and configures a provider for New.
type Options struct {
	Provider string

	LocalPath string

	AWSRegion string
	AWSBucket string

	GCPProjectID       string
	GCPBucket          string
	GCPCredentialsFile string
}

const (
	ProviderLocal = "local"
	ProviderAWS   = "aws"
	ProviderGCP   = "gcp"
)

func New(opts Options) (StorageProvider, error) {
	switch opts.Provider {
	case ProviderAWS:
		return NewAWSS3Storage(opts.AWSRegion, opts.AWSBucket)
	case ProviderGCP:
		return NewGCPStorage(opts.GCPProjectID, opts.GCPBucket, opts.GCPCredentialsFile)
	case ProviderLocal, "":
		return NewLocalStorage(opts.LocalPath)
	default:
		return nil, errors.New("storage: unsupported provider " + opts.Provider)
	}
}
