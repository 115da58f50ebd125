package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophtracker/internal/logging"
	sc "github.com/dmitrijs2005/gophtracker/internal/server/config"
	"github.com/dmitrijs2005/gophtracker/internal/server/report"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportResult points at an uploaded export.
type ExportResult struct {
	URL   string
	Key   string
	Count int
}

// ReportService renders a user's time entries and hands them out through
// object storage.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
	newID       func() string
}

func NewReportService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *ReportService {
	return &ReportService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		logger:      logger.With("module", "reports"),
		newID:       func() string { return uuid.NewString() },
	}
}

// ExportKey is the object key an export of userID is stored under.
func ExportKey(userID, id string, f report.Format) string {
	return fmt.Sprintf("exports/%s/%s.%s", userID, id, f.Extension())
}

func (s *ReportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export renders every entry of userID in the requested format, uploads the
// document and returns a presigned download link.
func (s *ReportService) Export(ctx context.Context, userID string, format string) (*ExportResult, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	entries, err := s.repomanager.TimeEntries(s.db).ListByUser(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, f, entries); err != nil {
		return nil, fmt.Errorf("error rendering export: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := ExportKey(userID, s.newID(), f)

	if err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(f.ContentType()),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ExportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "entries exported", "user_id", userID, "key", key, "count", len(entries), "format", string(f))
	return &ExportResult{URL: req.URL, Key: key, Count: len(entries)}, nil
}
