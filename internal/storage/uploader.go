package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/disintegration/imaging"
)

// ProfileImageSize 头像统一缩放到这个尺寸以内（保持比例）
const ProfileImageSize = 512

// Upload 校验之后把文件原样写入存储
func Upload(ctx context.Context, store ObjectStore, rule Rule, fh *multipart.FileHeader) (Object, error) {
	if err := rule.Check(fh); err != nil {
		return Object{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Object{}, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer f.Close()

	key := rule.NewKey(fh.Filename)
	url, err := store.Put(ctx, key, f, fh.Size, ContentType(fh))
	if err != nil {
		return Object{}, err
	}
	return Object{URL: url, Key: key, Size: fh.Size}, nil
}

// UploadFittedImage 解码图片，缩放到size x size以内后再上传
func UploadFittedImage(ctx context.Context, store ObjectStore, rule Rule, fh *multipart.FileHeader, size int) (Object, error) {
	if err := rule.Check(fh); err != nil {
		return Object{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Object{}, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return Object{}, fmt.Errorf("%w: 图片无法解码", ErrUnsupportedType)
	}
	b := img.Bounds()
	if b.Dx() > size || b.Dy() > size {
		img = imaging.Fit(img, size, size, imaging.Lanczos)
	}

	// GIF缩放后只保留第一帧，统一转成PNG；其余保持原格式
	format, contentType, ext := imaging.JPEG, "image/jpeg", ".jpg"
	if ct := ContentType(fh); ct != "image/jpeg" && ct != "image/jpg" {
		format, contentType, ext = imaging.PNG, "image/png", ".png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return Object{}, fmt.Errorf("图片编码失败: %w", err)
	}

	key := rule.NewKey(ext)
	size64 := int64(buf.Len())
	url, err := store.Put(ctx, key, &buf, size64, contentType)
	if err != nil {
		return Object{}, err
	}
	return Object{URL: url, Key: key, Size: size64}, nil
}
