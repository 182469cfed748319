package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"PickEm/api/config"
	"PickEm/api/utils/fileformat"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
)

// LogoPrefix is the key prefix team logos are stored under.
const LogoPrefix = "TeamLogos/"

// LogoSize bounds both sides of a stored raster logo.
const LogoSize = 256

var ErrNoBucket = errors.New("S3_BUCKET is not configured")

// LogoStore keeps team logo images and resolves their public URLs.
type LogoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	URL(key string) string
}

type S3Store struct {
	Client *s3.Client
	Bucket string
	Region string
}

// NewS3Store uses the configured access key when there is one and the
// default AWS credential chain otherwise.
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	bucket := strings.SplitN(cfg.S3Bucket, "/", 2)[0]
	if bucket == "" {
		return nil, ErrNoBucket
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Store{Client: client, Bucket: bucket, Region: cfg.AWSRegion}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws2.String(s.Bucket),
		Key:           aws2.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws2.Int64(int64(len(body))),
		ContentType:   aws2.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return PublicURL(s.Bucket, s.Region, key)
}

// PublicURL builds the virtual-host style URL of key. Keys that are already
// URLs pass through.
func PublicURL(bucket, region, key string) string {
	if key == "" || strings.HasPrefix(key, "http") {
		return key
	}
	if bucket == "" {
		return ""
	}
	if !strings.HasPrefix(key, LogoPrefix) {
		key = LogoPrefix + key
	}
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
}

// NewLogoKey names an upload so that re-uploads never collide.
func NewLogoKey(filename string) string {
	return LogoPrefix + fileformat.UniqueFormat(filename)
}

// NormalizeLogo decodes a raster image and re-encodes it as a PNG that fits
// within LogoSize on both sides. Smaller images keep their size.
func NormalizeLogo(body []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > LogoSize || b.Dy() > LogoSize {
		img = imaging.Fit(img, LogoSize, LogoSize, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGName swaps the extension of filename for .png.
func PNGName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".png"
}
