package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/google/uuid"
)

// ObjectUploader is the part of the S3 client used for exports.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ContactReader is the part of ContactStore an export needs.
type ContactReader interface {
	Account() models.Account
	ReadAll(ctx context.Context) ([]models.Contact, error)
}

// Snapshot is the exported document.
type Snapshot struct {
	Account    SnapshotAccount   `json:"account"`
	ExportedAt time.Time         `json:"exported_at"`
	Contacts   []SnapshotContact `json:"contacts"`
}

type SnapshotAccount struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
}

type SnapshotContact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
}

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectUploader {
		return s3.NewFromConfig(cfg, optFns...)
	}

	nowFn = time.Now
)

// BackupService uploads JSON snapshots of a contact list to object storage.
type BackupService struct {
	config *config.Config
	logger logging.Logger

	once      sync.Once
	uploader  ObjectUploader
	clientErr error
}

func NewBackupService(cfg *config.Config, logger logging.Logger) *BackupService {
	return &BackupService{config: cfg, logger: logger}
}

// Enabled reports whether a bucket is configured.
func (s *BackupService) Enabled() bool {
	return s.config.BackupEnabled()
}

// GetBackupKey returns the object key for an export of accountID taken at t.
func GetBackupKey(accountID int64, t time.Time) string {
	return fmt.Sprintf("contacts/%d/%04d/%02d/%02d/%v.json", accountID, t.Year(), int(t.Month()), t.Day(), uuid.New())
}

func (s *BackupService) getClient(ctx context.Context) (ObjectUploader, error) {
	s.once.Do(func() {
		cfg, err := loadDefaultAWSConfig(ctx,
			awsconfig.WithRegion(s.config.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.config.S3RootUser,
				s.config.S3RootPassword,
				"",
			)))
		if err != nil {
			s.clientErr = err
			return
		}

		s.uploader = newS3ClientFromConfig(cfg, func(o *s3.Options) {
			if s.config.S3BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
				// MinIO and other self-hosted endpoints
				o.UsePathStyle = true
			}
		})
	})
	return s.uploader, s.clientErr
}

// Export uploads the current contents of store and returns the object key.
// Without a configured bucket it returns common.ErrorBackupDisabled.
// Read failures keep the store's sentinel; upload failures are logged and
// returned as common.ErrorStore.
func (s *BackupService) Export(ctx context.Context, store ContactReader) (string, error) {
	if !s.Enabled() {
		return "", common.ErrorBackupDisabled
	}

	account := store.Account()
	logger := s.logger.With("account_id", account.ID)

	list, err := store.ReadAll(ctx)
	if err != nil {
		return "", err
	}

	now := nowFn().UTC()
	body, err := json.Marshal(newSnapshot(account, now, list))
	if err != nil {
		logger.Error(ctx, "snapshot encoding failed", "error", err)
		return "", common.ErrorStore
	}

	client, err := s.getClient(ctx)
	if err != nil {
		logger.Error(ctx, "object storage client failed", "error", err)
		return "", common.ErrorStore
	}

	bucket := s.config.S3Bucket
	key := GetBackupKey(account.ID, now)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Error(ctx, "backup upload failed", "key", key, "error", err)
		return "", common.ErrorStore
	}

	logger.Info(ctx, "contacts exported", "key", key, "count", len(list))
	return key, nil
}

func newSnapshot(account models.Account, at time.Time, list []models.Contact) *Snapshot {
	snap := &Snapshot{
		Account:    SnapshotAccount{ID: account.ID, UserName: account.UserName},
		ExportedAt: at,
		Contacts:   make([]SnapshotContact, 0, len(list)),
	}
	for _, c := range list {
		snap.Contacts = append(snap.Contacts, SnapshotContact{
			ID:      c.ID,
			Name:    c.Name,
			Surname: c.Surname,
			Address: c.Address,
			Phone:   c.Phone,
			Age:     c.Age,
		})
	}
	return snap
}
