package authz

import (
	"WeTube/internal/model"
	"testing"
)

func TestAuthorize(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("创建Authorizer失败: %v", err)
	}
	admin := &model.User{Role: model.RoleAdmin}
	user := &model.User{Role: model.RoleUser}

	all := []Capability{AdminAccess, NoticeWrite, InquiryReadAny, InquiryListAll, InquiryAnswer, CommentDeleteAny, VideoDeleteAny}
	for _, c := range all {
		if got := a.Authorize(admin, c); got != Allow {
			t.Errorf("管理员应当拥有 %s", c)
		}
		if got := a.Authorize(user, c); got != Deny {
			t.Errorf("普通用户不应拥有 %s", c)
		}
		if got := a.Authorize(nil, c); got != Deny {
			t.Errorf("匿名用户不应拥有 %s", c)
		}
	}
	if a.Authorize(admin, "video:launch_rocket").Allowed() {
		t.Error("未定义的能力应当拒绝")
	}
}
