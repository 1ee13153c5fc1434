package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"playtube-backend/config"
)

// R2Store talks to Cloudflare R2 through the S3 API.
type R2Store struct {
	s3           *s3.Client
	bucket       string
	publicDomain string
}

func NewR2Store(ctx context.Context, cfg *config.Config) (*R2Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{s3: client, bucket: cfg.R2Bucket, publicDomain: cfg.R2PublicDomain}, nil
}

func (s *R2Store) Upload(ctx context.Context, localPath string, opts UploadOptions) (*UploadResult, error) {
	defer RemoveTemp(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	obj := objectName(opts.ResourceType, localPath)

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(obj),
		Body:         f,
		ContentType:  aws.String(contentTypeFor(localPath, opts)),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", obj, err)
	}

	return &UploadResult{
		URL:        fmt.Sprintf("%s/%s/%s", s.publicDomain, s.bucket, obj),
		ObjectName: obj,
	}, nil
}

func (s *R2Store) Destroy(ctx context.Context, objectName string, opts UploadOptions) {
	if objectName == "" {
		return
	}
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		log.Printf("r2 delete %s: %v", objectName, err)
	}
}

func (s *R2Store) ObjectNameFromURL(rawURL string) (string, error) {
	return r2ObjectName(s.publicDomain, s.bucket, rawURL)
}

func r2ObjectName(domain, bucket, rawURL string) (string, error) {
	if domain != "" && strings.HasPrefix(rawURL, domain+"/"+bucket+"/") {
		return strings.TrimPrefix(rawURL, domain+"/"+bucket+"/"), nil
	}

	// r2.dev style: https://<bucket>.<account>.r2.dev/<object>
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(rawURL, prefix) {
			withoutScheme := strings.TrimPrefix(rawURL, prefix)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}
