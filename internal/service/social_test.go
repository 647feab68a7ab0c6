package service

import (
	"WeTube/internal/model"
	"errors"
	"testing"
)

func TestSubscriptionService_Toggle(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSubscriptionService(e.repos, e.uow)
	alice := e.user(t, "alice", model.RoleUser)
	bob := e.user(t, "bob", model.RoleUser)

	if _, err := svc.ToggleSubscription(alice.ID, alice.ID); !errors.Is(err, ErrSelfSubscription) {
		t.Fatalf("订阅自己应该是ErrSelfSubscription, 实际 %v", err)
	}
	if _, err := svc.ToggleSubscription(alice.ID, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的频道应该是ErrNotFound, 实际 %v", err)
	}

	on, err := svc.ToggleSubscription(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !on.IsSubscribed || on.SubscriberCount != 1 {
		t.Fatalf("第一次应该是订阅: %+v", on)
	}
	off, err := svc.ToggleSubscription(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if off.IsSubscribed || off.SubscriberCount != 0 {
		t.Fatalf("第二次应该是取消: %+v", off)
	}
}

func TestSubscriptionService_GetChannel(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSubscriptionService(e.repos, e.uow)
	alice := e.user(t, "alice", model.RoleUser)
	bob := e.user(t, "bob", model.RoleUser)
	e.video(t, bob.ID, "one")
	e.video(t, bob.ID, "two")
	if _, err := svc.ToggleSubscription(alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	page, err := svc.GetChannel(bob.ID, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if page.Owner.ID != bob.ID || page.VideoCount != 2 || page.SubscriberCount != 1 || !page.IsSubscribed {
		t.Fatalf("频道页不对: %+v", page)
	}
	if page.Videos[0].Title != "two" {
		t.Errorf("最新视频应该在最前, 实际 %s", page.Videos[0].Title)
	}

	anonymous, err := svc.GetChannel(bob.ID, 0)
	if err != nil || anonymous.IsSubscribed {
		t.Fatalf("匿名访问不应该是已订阅: %+v %v", anonymous, err)
	}
	self, err := svc.GetChannel(bob.ID, bob.ID)
	if err != nil || self.IsSubscribed {
		t.Fatalf("看自己的频道不应该是已订阅: %+v %v", self, err)
	}
	if _, err := svc.GetChannel(404, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望ErrNotFound, 实际 %v", err)
	}
}

func TestCommentService(t *testing.T) {
	e := newTestEnv(t)
	svc := NewCommentService(e.repos.CommentRepo, e.repos.VideoRepo, e.authorizer)
	author := e.user(t, "alice", model.RoleUser)
	other := e.user(t, "bob", model.RoleUser)
	admin := e.user(t, "root", model.RoleAdmin)
	video := e.video(t, author.ID, "hello")

	if _, err := svc.CreateComment(author.ID, video.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("空评论应该是ErrInvalidInput, 实际 %v", err)
	}
	if _, err := svc.CreateComment(author.ID, 404, "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的视频应该是ErrNotFound, 实际 %v", err)
	}

	first, err := svc.CreateComment(author.ID, video.ID, "first")
	if err != nil {
		t.Fatal(err)
	}
	if first.Author.ID != author.ID {
		t.Fatal("评论应该带作者")
	}
	second, err := svc.CreateComment(other.ID, video.ID, "second")
	if err != nil {
		t.Fatal(err)
	}

	comments, err := svc.GetComments(video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 2 || comments[0].ID != second.ID {
		t.Fatalf("评论应该最新的在前: %+v", comments)
	}

	if err := svc.DeleteComment(other, first.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("删别人的评论应该是ErrForbidden, 实际 %v", err)
	}
	if err := svc.DeleteComment(author, first.ID); err != nil {
		t.Fatalf("作者删除自己的评论失败: %v", err)
	}
	if err := svc.DeleteComment(admin, second.ID); err != nil {
		t.Fatalf("管理员删除评论失败: %v", err)
	}
	if err := svc.DeleteComment(admin, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("已删除的评论应该是ErrNotFound, 实际 %v", err)
	}
	if err := svc.DeleteComment(nil, first.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("未登录应该是ErrUnauthenticated, 实际 %v", err)
	}
}
