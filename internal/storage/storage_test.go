package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

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

func TestRule_Check(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		ct      string
		size    int
		wantErr error
	}{
		{"mp4", VideoRule, "video/mp4", 10, nil},
		{"quicktime", VideoRule, "video/quicktime", 10, nil},
		{"视频字段传图片", VideoRule, "image/png", 10, ErrUnsupportedType},
		{"缩略图png", ThumbnailRule, "image/png", 10, nil},
		{"缩略图不收gif", ThumbnailRule, "image/gif", 10, ErrUnsupportedType},
		{"头像gif", ProfileImageRule, "image/gif", 10, nil},
		{"带参数的类型", ThumbnailRule, "image/jpeg; charset=binary", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := fileHeader(t, tt.rule.Field, "a.bin", tt.ct, bytes.Repeat([]byte{1}, tt.size))
			err := tt.rule.Check(fh)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("不应报错: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("期望 %v, 实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestRule_CheckSize(t *testing.T) {
	small := Rule{Field: "thumbnail", MaxSize: 4, Types: []string{"image/png"}}
	fh := fileHeader(t, "thumbnail", "a.png", "image/png", []byte("12345"))
	if err := small.Check(fh); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("期望超出大小限制, 实际 %v", err)
	}
}

func TestRule_NewKey(t *testing.T) {
	key := VideoRule.NewKey("My Movie.MP4")
	if !strings.HasPrefix(key, "videos/") || !strings.HasSuffix(key, ".mp4") {
		t.Fatalf("key格式不对: %s", key)
	}
	if key == VideoRule.NewKey("My Movie.MP4") {
		t.Fatal("两次生成的key不应相同")
	}
}

func TestLocalStore_PutDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/uploads/")
	if err != nil {
		t.Fatal(err)
	}
	url, err := store.Put(context.Background(), "videos/a.mp4", strings.NewReader("data"), 4, "video/mp4")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if url != "/uploads/videos/a.mp4" {
		t.Fatalf("URL不对: %s", url)
	}
	if b, _ := os.ReadFile(filepath.Join(root, "videos", "a.mp4")); string(b) != "data" {
		t.Fatalf("文件内容不对: %q", b)
	}
	if err := store.Delete(context.Background(), "videos/a.mp4"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	// 重复删除不报错
	if err := store.Delete(context.Background(), "videos/a.mp4"); err != nil {
		t.Fatalf("重复删除不应报错: %v", err)
	}
	if _, err := store.Put(context.Background(), "../escape", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatal("越界的key应当被拒绝")
	}
}

func TestUploadFittedImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1024, 256))
	for x := 0; x < 1024; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	fh := fileHeader(t, "profileImage", "me.png", "image/png", buf.Bytes())

	store, _ := NewLocalStore(t.TempDir(), "/uploads")
	obj, err := UploadFittedImage(context.Background(), store, ProfileImageRule, fh, ProfileImageSize)
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if !strings.HasPrefix(obj.Key, "profiles/") || !strings.HasSuffix(obj.Key, ".png") {
		t.Fatalf("key不对: %s", obj.Key)
	}

	f, err := os.Open(filepath.Join(store.Root(), filepath.FromSlash(obj.Key)))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 512 || cfg.Height != 128 {
		t.Fatalf("期望缩放到512x128, 实际 %dx%d", cfg.Width, cfg.Height)
	}
}

func TestUploadFittedImage_NotAnImage(t *testing.T) {
	fh := fileHeader(t, "profileImage", "me.png", "image/png", []byte("not an image"))
	store, _ := NewLocalStore(t.TempDir(), "/uploads")
	if _, err := UploadFittedImage(context.Background(), store, ProfileImageRule, fh, ProfileImageSize); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("期望不支持的类型, 实际 %v", err)
	}
}
