// Package testutil holds helpers shared by package tests: an in-memory database,
// a fake media store and HTTP request helpers.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/validator"
)

// NewDB opens a per-test in-memory sqlite database and migrates the given models.
func NewDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// Faker returns a deterministic fake-data generator.
func Faker() *gofakeit.Faker {
	return gofakeit.New(42)
}

// ErrFakeStorage is what FakeStore returns when told to fail.
var ErrFakeStorage = errors.New("fake storage failure")

// FakeStore records calls and lets tests override behaviour per method.
type FakeStore struct {
	mu sync.Mutex

	UploadFunc func(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*storage.Object, error)
	DeleteFunc func(ctx context.Context, publicID string) error

	Uploaded []string
	Deleted  []string
}

func (f *FakeStore) Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*storage.Object, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, folder, filename, body, size, contentType)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("%s/%d-%s", folder, len(f.Uploaded)+1, filename)
	f.Uploaded = append(f.Uploaded, id)
	return &storage.Object{URL: f.URL(id), PublicID: id}, nil
}

func (f *FakeStore) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	f.Deleted = append(f.Deleted, publicID)
	f.mu.Unlock()
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, publicID)
	}
	return nil
}

func (f *FakeStore) URL(publicID string) string {
	return "https://cdn.test/" + publicID
}

// DeletedIDs returns a copy of the ids passed to Delete.
func (f *FakeStore) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Deleted...)
}

// FailingUpload makes every upload fail.
func FailingUpload(context.Context, string, string, io.Reader, int64, string) (*storage.Object, error) {
	return nil, ErrFakeStorage
}

// FailingDelete makes every delete fail.
func FailingDelete(context.Context, string) error {
	return ErrFakeStorage
}

// Do sends a JSON request through the router. token may be empty.
func Do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Envelope mirrors the success/error JSON bodies.
type Envelope struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	ErrorCode    string          `json:"errorCode"`
	TrackingCode string          `json:"trackingCode"`
	Data         json.RawMessage `json:"data"`
}

// Decode parses the response envelope and, when dest is non-nil, its data.
func Decode(t *testing.T, w *httptest.ResponseRecorder, dest any) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(env.Data, dest), string(env.Data))
	}
	return env
}

func init() {
	gin.SetMode(gin.TestMode)
	validator.UseJSONNames()
}
