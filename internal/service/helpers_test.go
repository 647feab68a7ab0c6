package service

import (
	"WeTube/internal/authz"
	"WeTube/internal/data"
	"WeTube/internal/database/dbtest"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm"
)

// memStore 内存里的ObjectStore，failPrefix匹配的key写入失败
type memStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	failPrefix string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if m.failPrefix != "" && strings.HasPrefix(key, m.failPrefix) {
		return "", errors.New("oss: connection reset")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return "https://cdn.test/" + key, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	if m.failPrefix != "" && strings.HasPrefix(key, m.failPrefix) {
		return errors.New("oss: connection reset")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type cleanupCall struct {
	Reason string
	Keys   []string
}

// recordingPublisher 记下每次清理请求，只保留非空key
type recordingPublisher struct {
	mu    sync.Mutex
	calls []cleanupCall
}

func (p *recordingPublisher) PublishCleanup(_ context.Context, reason string, keys ...string) {
	keys = nonEmpty(keys)
	if len(keys) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, cleanupCall{Reason: reason, Keys: keys})
}

func (p *recordingPublisher) last() (cleanupCall, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return cleanupCall{}, false
	}
	return p.calls[len(p.calls)-1], true
}

type testEnv struct {
	db         *gorm.DB
	repos      *data.Repositories
	uow        data.UnitOfWork
	store      *memStore
	publisher  *recordingPublisher
	authorizer *authz.Authorizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.Open(t)
	repos := data.NewRepositories(db)
	return &testEnv{
		db:         db,
		repos:      repos,
		uow:        data.NewUnitOfWork(db, repos),
		store:      newMemStore(),
		publisher:  &recordingPublisher{},
		authorizer: authz.MustNew(),
	}
}

func (e *testEnv) user(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "x", Nickname: name, Role: role}
	if err := e.repos.UserRepo.Create(u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

func (e *testEnv) video(t *testing.T, authorID uint64, title string) *model.Video {
	t.Helper()
	v := &model.Video{
		AuthorID:     authorID,
		Title:        title,
		VideoURL:     "https://cdn.test/videos/" + title + ".mp4",
		VideoKey:     "videos/" + title + ".mp4",
		ThumbnailURL: "https://cdn.test/thumbnails/" + title + ".jpg",
		ThumbnailKey: "thumbnails/" + title + ".jpg",
	}
	if err := e.repos.VideoRepo.Create(v); err != nil {
		t.Fatalf("创建视频失败: %v", err)
	}
	return v
}

func (e *testEnv) videoService(cache *repository.VideoPageCache) VideoService {
	return NewVideoService(e.repos, e.uow, e.store, e.publisher, cache)
}

// fileHeader 构造一个真实的multipart.FileHeader
func fileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
