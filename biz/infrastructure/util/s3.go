package util

import (
	"essay-assess/biz/infrastructure/config"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	presigner     *S3Presigner
	presignerOnce sync.Once
	presignerErr  error
)

// S3Presigner 为任务资源文件生成加签下载链接
type S3Presigner struct {
	svc    *s3.S3
	bucket string
	expire time.Duration
}

func NewS3Presigner(c *config.Config) (*S3Presigner, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(c.S3.Region),
		Endpoint:         aws.String(c.S3.Endpoint),
		Credentials:      credentials.NewStaticCredentials(c.S3.AccessKey, c.S3.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session failed: %w", err)
	}

	expire := c.S3.PresignExpire
	if expire <= 0 {
		expire = 900 // 默认15分钟
	}

	return &S3Presigner{
		svc:    s3.New(sess),
		bucket: c.S3.Bucket,
		expire: time.Duration(expire) * time.Second,
	}, nil
}

func GetS3Presigner() (*S3Presigner, error) {
	presignerOnce.Do(func() {
		presigner, presignerErr = NewS3Presigner(config.GetConfig())
	})
	return presigner, presignerErr
}

// PresignGet 生成对象的加签GET链接
func (p *S3Presigner) PresignGet(objectKey string) (string, error) {
	req, _ := p.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objectKey),
	})
	url, err := req.Presign(p.expire)
	if err != nil {
		return "", fmt.Errorf("presign object %s failed: %w", objectKey, err)
	}
	return url, nil
}
