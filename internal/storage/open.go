package storage

import (
	"github.com/sirupsen/logrus"
)

// LocalURLPrefix 本地存储文件对外的访问前缀
const LocalURLPrefix = "/uploads"

// Open useOSS为true时用OSS，否则退回到localRoot目录。
// 第二个返回值是需要由HTTP服务直接提供的本地目录，用OSS时为空
func Open(cfg OSSConfig, useOSS bool, localRoot string, log logrus.FieldLogger) (ObjectStore, string, error) {
	if useOSS {
		store, err := NewOSSStore(cfg, log)
		if err != nil {
			return nil, "", err
		}
		log.WithField("bucket", cfg.Bucket).Info("使用阿里云OSS存储")
		return store, "", nil
	}
	store, err := NewLocalStore(localRoot, LocalURLPrefix)
	if err != nil {
		return nil, "", err
	}
	log.WithField("root", localRoot).Warn("未配置OSS，使用本地磁盘存储")
	return store, store.Root(), nil
}
