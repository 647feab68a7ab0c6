package service

import (
	"WeTube/internal/model"
	"context"
	"errors"
	"testing"
)

func TestAdminService_Dashboard(t *testing.T) {
	e := newTestEnv(t)
	svc := NewAdminService(e.repos, e.uow, e.authorizer, e.publisher, nil)
	admin := e.user(t, "root", model.RoleAdmin)
	alice := e.user(t, "alice", model.RoleUser)
	for i, title := range []string{"a", "b", "c"} {
		v := e.video(t, alice.ID, title)
		e.db.Model(v).UpdateColumn("views", (i+1)*10)
	}
	inquiries := NewInquiryService(e.repos.InquiryRepo, e.uow, e.authorizer)
	answered, _ := inquiries.Create(alice.ID, "t", "c")
	inquiries.Create(alice.ID, "t", "c")
	cleared, _ := inquiries.Create(alice.ID, "t", "c")
	inquiries.Answer(admin, answered.ID, "ok")
	inquiries.Answer(admin, cleared.ID, "ok")
	inquiries.ClearAnswer(admin, cleared.ID)

	if _, err := svc.Dashboard(alice); !errors.Is(err, ErrForbidden) {
		t.Fatalf("普通用户应该是ErrForbidden, 实际 %v", err)
	}
	stats, err := svc.Dashboard(admin)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalUsers != 2 || stats.TotalVideos != 3 || stats.TotalViews != 60 {
		t.Errorf("统计不对: %+v", stats)
	}
	// 未答复 + 已清除
	if stats.PendingInquiries != 2 {
		t.Errorf("待答复应该是2, 实际 %d", stats.PendingInquiries)
	}
	if len(stats.RecentUsers) != 2 || len(stats.RecentVideos) != 3 {
		t.Errorf("最近列表不对: users=%d videos=%d", len(stats.RecentUsers), len(stats.RecentVideos))
	}
	if stats.RecentVideos[0].Title != "c" || stats.RecentVideos[0].Author.ID != alice.ID {
		t.Errorf("最近视频应该最新在前且带作者: %+v", stats.RecentVideos[0])
	}
}

func TestAdminService_ListsArePagedByTen(t *testing.T) {
	e := newTestEnv(t)
	svc := NewAdminService(e.repos, e.uow, e.authorizer, e.publisher, nil)
	admin := e.user(t, "root", model.RoleAdmin)
	for i := 0; i < 11; i++ {
		e.video(t, admin.ID, string(rune('a'+i)))
	}

	first, err := svc.ListVideos(admin, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.Total != 11 || len(first.Videos) != 10 || first.Page.TotalPages(first.Total) != 2 {
		t.Fatalf("第一页不对: total=%d len=%d", first.Total, len(first.Videos))
	}
	second, err := svc.ListVideos(admin, 2)
	if err != nil || len(second.Videos) != 1 {
		t.Fatalf("第二页应该只有1个: %+v %v", second, err)
	}
	users, err := svc.ListUsers(admin, 0)
	if err != nil || users.Total != 1 || users.Users[0].VideoCount != 11 {
		t.Fatalf("用户列表不对: %+v %v", users, err)
	}
}

func TestAdminService_DeleteVideo(t *testing.T) {
	e := newTestEnv(t)
	svc := NewAdminService(e.repos, e.uow, e.authorizer, e.publisher, nil)
	admin := e.user(t, "root", model.RoleAdmin)
	alice := e.user(t, "alice", model.RoleUser)
	video := e.video(t, alice.ID, "hello")
	if _, err := e.videoService(nil).ToggleLike(alice.ID, video.ID); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := svc.DeleteVideo(ctx, alice, video.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("普通用户删除应该是ErrForbidden, 实际 %v", err)
	}
	if err := svc.DeleteVideo(ctx, admin, video.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	var count int64
	e.db.Unscoped().Model(&model.Video{}).Count(&count)
	if count != 0 {
		t.Fatal("视频应该被物理删除")
	}
	call, ok := e.publisher.last()
	if !ok || call.Reason != ReasonVideoDeleted || len(call.Keys) != 2 {
		t.Fatalf("应该把两个文件交给清理队列: %+v", call)
	}
	if err := svc.DeleteVideo(ctx, admin, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("重复删除应该是ErrNotFound, 实际 %v", err)
	}
}
