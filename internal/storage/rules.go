package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("文件大小超出限制")
	ErrUnsupportedType = errors.New("不支持的文件类型")
)

// Rule 一个multipart字段的上传限制
type Rule struct {
	Field   string
	Folder  string
	MaxSize int64
	Types   []string
}

const mb = 1 << 20

var (
	VideoRule = Rule{
		Field:   "video",
		Folder:  "videos",
		MaxSize: 500 * mb,
		Types:   []string{"video/mp4", "video/x-matroska", "video/webm", "video/quicktime"},
	}
	ThumbnailRule = Rule{
		Field:   "thumbnail",
		Folder:  "thumbnails",
		MaxSize: 5 * mb,
		Types:   []string{"image/jpeg", "image/png", "image/jpg"},
	}
	ProfileImageRule = Rule{
		Field:   "profileImage",
		Folder:  "profiles",
		MaxSize: 5 * mb,
		Types:   []string{"image/jpeg", "image/png", "image/jpg", "image/gif"},
	}
)

// ContentType 取客户端声明的类型，去掉 ;charset 之类的参数
func ContentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func (r Rule) Check(fh *multipart.FileHeader) error {
	if fh.Size > r.MaxSize {
		return fmt.Errorf("%w: %s 最大 %dMB", ErrFileTooLarge, r.Field, r.MaxSize/mb)
	}
	ct := ContentType(fh)
	for _, t := range r.Types {
		if t == ct {
			return nil
		}
	}
	return fmt.Errorf("%w: %s 不接受 %q", ErrUnsupportedType, r.Field, ct)
}

// NewKey 生成 folder/uuid.ext，原文件名只取扩展名
func (r Rule) NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(r.Folder, uuid.NewString()+ext)
}
