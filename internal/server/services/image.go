package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	sc "github.com/dmitrijs2005/gophmarket/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ErrUploadsDisabled is returned when no bucket is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageUploadInput describes the file the client is about to upload.
type ImageUploadInput struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// ImageUpload tells the client where to PUT the file and which URL to store
// as the product image afterwards.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

// ImageService hands out presigned S3 upload URLs for product images.
type ImageService struct {
	config *sc.Config
	now    func() time.Time
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{config: config, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *ImageService) Enabled() bool { return s.config.S3Bucket != "" }

func imageKey(now time.Time, contentType string) (string, error) {
	name, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	ext := strings.TrimPrefix(contentType, "image/")
	if ext == "jpeg" {
		ext = "jpg"
	}
	return fmt.Sprintf("products/%d/%02d/%s.%s", now.Year(), now.Month(), name, ext), nil
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.config.S3Region)}
	if s.config.S3RootUser != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a presigned PUT URL for a new image object.
func (s *ImageService) PresignUpload(ctx context.Context, in ImageUploadInput) (*ImageUpload, error) {
	if !s.Enabled() {
		return nil, ErrUploadsDisabled
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	key, err := imageKey(s.now().UTC(), in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("error generating key: %w", err)
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(in.ContentType),
	}, s3.WithPresignExpires(s.config.ImageUploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	return &ImageUpload{Key: key, UploadURL: req.URL, ImageURL: s.publicURL(key)}, nil
}

func (s *ImageService) publicURL(key string) string {
	if s.config.S3PublicBaseURL != "" {
		return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
	}
	if s.config.S3BaseEndpoint != "" {
		return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.S3Bucket, s.config.S3Region, key)
}
