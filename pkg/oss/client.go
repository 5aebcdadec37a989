package oss

import (
	"Foodnote/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// Bucket 照片字节存放在 OSS 的一个 bucket 里
type Bucket struct {
	Client     *oss.Client
	BucketName string
	Prefix     string
}

func NewBucket(cfg *config.OssConfig) (*Bucket, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("oss bucket is not configured")
	}

	var provider credentials.CredentialsProvider
	if cfg.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret)
	} else {
		provider = credentials.NewEnvironmentVariableCredentialsProvider()
	}

	ossCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region)

	return &Bucket{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		Prefix:     cfg.Prefix,
	}, nil
}

func (b *Bucket) key(objectKey string) string {
	if b.Prefix == "" {
		return objectKey
	}
	return path.Join(b.Prefix, objectKey)
}

// Put 上传对象
func (b *Bucket) Put(ctx context.Context, objectKey string, data []byte) error {
	_, err := b.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(b.BucketName),
		Key:    oss.Ptr(b.key(objectKey)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// Get 下载为流，调用方负责关闭
func (b *Bucket) Get(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	out, err := b.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(b.BucketName),
		Key:    oss.Ptr(b.key(objectKey)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Delete 删除对象，对象不存在时返回 fs.ErrNotExist
func (b *Bucket) Delete(ctx context.Context, objectKey string) error {
	_, err := b.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(b.BucketName),
		Key:    oss.Ptr(b.key(objectKey)),
	})
	if isNotFound(err) {
		return fmt.Errorf("%w: %v", fs.ErrNotExist, err)
	}
	return err
}

func isNotFound(err error) bool {
	var serr *oss.ServiceError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code == "NoSuchKey" || serr.StatusCode == http.StatusNotFound
}
