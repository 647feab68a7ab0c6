// Package storage 负责把上传的文件放进对象存储，数据库里只存URL和key
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrStorageUnavailable = errors.New("对象存储暂时不可用")

// ObjectStore 对象存储的最小接口，生产用OSS，本地开发用磁盘，测试用fake
type ObjectStore interface {
	// Put 写入对象并返回可公开访问的URL
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Object 一次上传的结果
type Object struct {
	URL  string
	Key  string
	Size int64
}
