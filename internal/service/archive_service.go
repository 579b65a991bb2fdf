package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/internal/util"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveProvider 归档对象存储
type ArchiveProvider interface {
	Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
}

// LocalArchiveProvider 本地目录
type LocalArchiveProvider struct {
	Root string
}

func (p *LocalArchiveProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return dst, nil
}

// MinioArchiveProvider MinIO
type MinioArchiveProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioArchiveProvider(cfg *config.StorageConfig) (*MinioArchiveProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiveProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioArchiveProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return "/" + p.Bucket + "/" + name, nil
}

// OSSArchiveProvider 阿里云 OSS
type OSSArchiveProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSArchiveProvider(cfg *config.StorageConfig) (*OSSArchiveProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSArchiveProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSArchiveProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := p.Bucket.PutObject(name, reader, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, name), nil
}

// ArchiveService 每次提交写一份 JSON 审计文档
type ArchiveService struct {
	Provider ArchiveProvider
}

// NewArchiveService type 为 none 时返回 nil
func NewArchiveService(cfg *config.StorageConfig) (*ArchiveService, error) {
	var provider ArchiveProvider
	switch cfg.Type {
	case util.StorageNone, "":
		return nil, nil
	case util.StorageMinio:
		p, err := NewMinioArchiveProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	case util.StorageOSS:
		p, err := NewOSSArchiveProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	case util.StorageLocal:
		provider = &LocalArchiveProvider{Root: cfg.LocalPath}
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
	return &ArchiveService{Provider: provider}, nil
}

// ArchiveKey submissions/2006/01/02/<submissionId>.json，日期取提交时间
func ArchiveKey(summary scoring.SubmissionSummary) string {
	day := "unknown"
	if ts, err := time.Parse(scoring.TimestampLayout, summary.Timestamp); err == nil {
		day = ts.Format("2006/01/02")
	}
	return path.Join("submissions", day, summary.SubmissionID+".json")
}

func (s *ArchiveService) ArchiveSubmission(ctx context.Context, result *SubmitResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return s.Provider.Upload(ctx, ArchiveKey(result.Summary), bytes.NewReader(data), int64(len(data)), util.ContentTypeJSON)
}
