package service

import "errors"

// handler按这些哨兵错误映射HTTP状态码，具体原因用 fmt.Errorf("%w: ...") 包在外面
var (
	// 400
	ErrInvalidInput     = errors.New("无效的参数")
	ErrDuplicate        = errors.New("数据已存在")
	ErrSelfSubscription = errors.New("不能订阅自己")

	// 401
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUnauthenticated    = errors.New("用户未认证")

	ErrForbidden = errors.New("没有权限")
	ErrNotFound  = errors.New("资源不存在")

	// 存储故障，500
	ErrStorage = errors.New("文件上传失败，请稍后再试")
)
