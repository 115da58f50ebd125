package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	sc "github.com/dmitrijs2005/gophtracker/internal/server/config"
	"github.com/dmitrijs2005/gophtracker/internal/server/report"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type s3Calls struct {
	put      *s3.PutObjectInput
	body     string
	presign  *s3.GetObjectInput
	expires  time.Duration
	region   string
	endpoint string
}

// stubS3 replaces the S3 seams for the duration of the test.
func stubS3(t *testing.T, putErr, presignErr error) *s3Calls {
	t.Helper()
	calls := &s3Calls{}

	origLoad, origNew, origPut, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject, presignGetObject = origLoad, origNew, origPut, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		calls.region = lo.Region
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		calls.endpoint = aws.ToString(o.BaseEndpoint)
		return s3.NewFromConfig(cfg, optFns...)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		calls.put = in
		b, _ := io.ReadAll(in.Body)
		calls.body = string(b)
		return putErr
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		calls.presign = in
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		calls.expires = po.Expires
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + aws.ToString(in.Key) + "?sig=1"}, nil
	}
	return calls
}

func newReportService(t *testing.T) (*ReportService, *memStore) {
	t.Helper()
	store := newMemStore()
	store.entries = []timer.TimeEntry{
		{ID: "e1", UserID: "u1", TimerID: "t1", Trackable: timer.Project("p3"), ProjectID: "p3",
			StartedAt: t0, EndedAt: t0.Add(time.Hour), DurationSeconds: 3000, Description: "design"},
		{ID: "e2", UserID: "u2", TimerID: "t2", Trackable: timer.Project("p9"), ProjectID: "p9",
			StartedAt: t0, EndedAt: t0.Add(time.Hour), DurationSeconds: 60},
	}
	cfg := &sc.Config{
		S3Region:          "us-east-1",
		S3RootUser:        "minioadmin",
		S3RootPassword:    "minioadmin",
		S3BaseEndpoint:    "http://127.0.0.1:9000",
		S3Bucket:          "reports",
		ExportURLValidity: 15 * time.Minute,
	}
	svc := NewReportService(newTxDB(t), store, cfg, nopLogger{})
	svc.newID = func() string { return "x1" }
	return svc, store
}

func TestExport_CSV(t *testing.T) {
	calls := stubS3(t, nil, nil)
	svc, _ := newReportService(t)

	res, err := svc.Export(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, "exports/u1/x1.csv", res.Key)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "https://s3.local/exports/u1/x1.csv?sig=1", res.URL)

	assert.Equal(t, "us-east-1", calls.region)
	assert.Equal(t, "http://127.0.0.1:9000", calls.endpoint)
	assert.Equal(t, "reports", aws.ToString(calls.put.Bucket))
	assert.Equal(t, "text/csv; charset=utf-8", aws.ToString(calls.put.ContentType))
	assert.Equal(t, "exports/u1/x1.csv", aws.ToString(calls.presign.Key))
	assert.Equal(t, 15*time.Minute, calls.expires)

	assert.Contains(t, calls.body, "e1,t1,project,p3")
	assert.NotContains(t, calls.body, "e2")
}

func TestExport_ICS(t *testing.T) {
	calls := stubS3(t, nil, nil)
	svc, _ := newReportService(t)

	res, err := svc.Export(context.Background(), "u1", "ics")
	require.NoError(t, err)
	assert.Equal(t, "exports/u1/x1.ics", res.Key)
	assert.True(t, strings.HasPrefix(calls.body, "BEGIN:VCALENDAR"))
	assert.Equal(t, report.FormatICS.ContentType(), aws.ToString(calls.put.ContentType))
}

func TestExport_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("bad format", func(t *testing.T) {
		stubS3(t, nil, nil)
		svc, _ := newReportService(t)
		_, err := svc.Export(ctx, "u1", "pdf")
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("list", func(t *testing.T) {
		stubS3(t, nil, nil)
		svc, store := newReportService(t)
		store.fail["entries.ListByUser"] = errBoom{}
		_, err := svc.Export(ctx, "u1", "csv")
		assert.EqualError(t, err, "boom")
	})

	t.Run("aws config", func(t *testing.T) {
		stubS3(t, nil, nil)
		loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("load-fail")
		}
		svc, _ := newReportService(t)
		_, err := svc.Export(ctx, "u1", "csv")
		assert.EqualError(t, err, "load-fail")
	})

	t.Run("upload", func(t *testing.T) {
		stubS3(t, errors.New("put-fail"), nil)
		svc, _ := newReportService(t)
		_, err := svc.Export(ctx, "u1", "csv")
		assert.ErrorContains(t, err, "error uploading export: put-fail")
	})

	t.Run("presign", func(t *testing.T) {
		stubS3(t, nil, errors.New("sign-fail"))
		svc, _ := newReportService(t)
		_, err := svc.Export(ctx, "u1", "csv")
		assert.ErrorContains(t, err, "error presigning export: sign-fail")
	})
}

func TestExportKey(t *testing.T) {
	assert.Equal(t, "exports/u/abc.ics", ExportKey("u", "abc", report.FormatICS))
}
