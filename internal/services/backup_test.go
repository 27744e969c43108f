package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	err    error
	bucket string
	key    string
	body   []byte
	calls  int
}

func (f *fakeUploader) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

type fakeReader struct {
	account models.Account
	list    []models.Contact
	err     error
}

func (f *fakeReader) Account() models.Account { return f.account }

func (f *fakeReader) ReadAll(context.Context) ([]models.Contact, error) { return f.list, f.err }

func backupConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.S3Bucket = "contacts"
	cfg.S3RootUser = "user"
	cfg.S3RootPassword = "password"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000/"
	return cfg
}

// stubAWS makes getClient hand out up and records the options applied.
func stubAWS(t *testing.T, up ObjectUploader, loadErr error) *s3.Options {
	t.Helper()
	origLoad, origNew, origNow := loadDefaultAWSConfig, newS3ClientFromConfig, nowFn
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, nowFn = origLoad, origNew, origNow
	})

	applied := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		if loadErr != nil {
			return aws.Config{}, loadErr
		}
		return aws.Config{Region: "us-east-1"}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectUploader {
		for _, fn := range optFns {
			fn(applied)
		}
		return up
	}
	nowFn = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }
	return applied
}

func TestExport_UploadsSnapshot(t *testing.T) {
	up := &fakeUploader{}
	applied := stubAWS(t, up, nil)

	reader := &fakeReader{
		account: models.Account{ID: 42, UserName: "alice"},
		list: []models.Contact{
			{ID: 1, OwnerID: 42, ContactDetails: models.ContactDetails{Name: "Anna", Surname: "Bell", Phone: "555-1234", Age: 30}},
		},
	}

	svc := NewBackupService(backupConfig(), newTestLogger())
	key, err := svc.Export(context.Background(), reader)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^contacts/42/2024/03/05/[0-9a-f-]{36}\.json$`), key)
	assert.Equal(t, key, up.key)
	assert.Equal(t, "contacts", up.bucket)
	assert.Equal(t, "http://127.0.0.1:9000/", aws.ToString(applied.BaseEndpoint))
	assert.True(t, applied.UsePathStyle)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(up.body, &snap))
	assert.Equal(t, SnapshotAccount{ID: 42, UserName: "alice"}, snap.Account)
	assert.True(t, snap.ExportedAt.Equal(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)))
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, SnapshotContact{ID: 1, Name: "Anna", Surname: "Bell", Phone: "555-1234", Age: 30}, snap.Contacts[0])

	// the client is built once
	_, err = svc.Export(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}

func TestExport_EmptyListWritesEmptyArray(t *testing.T) {
	up := &fakeUploader{}
	stubAWS(t, up, nil)

	svc := NewBackupService(backupConfig(), newTestLogger())
	_, err := svc.Export(context.Background(), &fakeReader{account: models.Account{ID: 1}, list: []models.Contact{}})
	require.NoError(t, err)
	assert.Contains(t, string(up.body), `"contacts":[]`)
}

func TestExport_Disabled(t *testing.T) {
	up := &fakeUploader{}
	stubAWS(t, up, nil)

	cfg := backupConfig()
	cfg.S3Bucket = ""
	svc := NewBackupService(cfg, newTestLogger())
	assert.False(t, svc.Enabled())

	_, err := svc.Export(context.Background(), &fakeReader{})
	require.ErrorIs(t, err, common.ErrorBackupDisabled)
	assert.Zero(t, up.calls)
}

func TestExport_Errors(t *testing.T) {
	t.Run("read fails", func(t *testing.T) {
		up := &fakeUploader{}
		stubAWS(t, up, nil)
		svc := NewBackupService(backupConfig(), newTestLogger())

		_, err := svc.Export(context.Background(), &fakeReader{err: common.ErrorStore})
		require.ErrorIs(t, err, common.ErrorStore)
		assert.Zero(t, up.calls)
	})

	t.Run("aws config fails", func(t *testing.T) {
		stubAWS(t, &fakeUploader{}, errors.New("no region"))
		svc := NewBackupService(backupConfig(), newTestLogger())

		_, err := svc.Export(context.Background(), &fakeReader{})
		require.ErrorIs(t, err, common.ErrorStore)
	})

	t.Run("upload fails", func(t *testing.T) {
		stubAWS(t, &fakeUploader{err: errors.New("access denied")}, nil)
		svc := NewBackupService(backupConfig(), newTestLogger())

		_, err := svc.Export(context.Background(), &fakeReader{})
		require.ErrorIs(t, err, common.ErrorStore)
	})
}

func TestExport_WithoutEndpointKeepsVirtualHosting(t *testing.T) {
	applied := stubAWS(t, &fakeUploader{}, nil)
	cfg := backupConfig()
	cfg.S3BaseEndpoint = ""

	_, err := NewBackupService(cfg, newTestLogger()).Export(context.Background(), &fakeReader{})
	require.NoError(t, err)
	assert.Nil(t, applied.BaseEndpoint)
	assert.False(t, applied.UsePathStyle)
}

func TestExport_FromContactStore(t *testing.T) {
	up := &fakeUploader{}
	stubAWS(t, up, nil)

	db, m := newTestDB(t)
	acc := register(t, newTestCredentialService(db, m), "alice", "pw1")
	store := NewContactStore(db, m, acc, newTestLogger())
	_, err := store.Create(context.Background(), models.ContactDetails{Name: "Anna", Phone: "555"})
	require.NoError(t, err)

	_, err = NewBackupService(backupConfig(), newTestLogger()).Export(context.Background(), store)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(up.body, &snap))
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, "Anna", snap.Contacts[0].Name)
}

func TestGetBackupKey(t *testing.T) {
	k1 := GetBackupKey(3, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	k2 := GetBackupKey(3, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^contacts/3/2025/12/31/`, k1)
	assert.NotEqual(t, k1, k2)
}
