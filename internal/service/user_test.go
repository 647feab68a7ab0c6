package service

import (
	"WeTube/internal/auth"
	"WeTube/internal/model"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newUserService(e *testEnv) (UserService, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	return NewUserService(e.repos.UserRepo, tokens, e.store, e.publisher), tokens
}

func TestUserService_Signup(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "pw", Nickname: "Alice"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.ID == 0 || user.Role != model.RoleUser {
		t.Fatalf("新用户字段不对: %+v", user)
	}
	if user.Password == "pw" {
		t.Fatal("密码不应该明文存储")
	}

	tests := []struct {
		name string
		in   SignupInput
		want error
	}{
		{"同名", SignupInput{Username: "alice", Email: "new@example.com", Password: "pw"}, ErrDuplicate},
		{"同邮箱", SignupInput{Username: "bob", Email: "alice@example.com", Password: "pw"}, ErrDuplicate},
		{"缺密码", SignupInput{Username: "carol", Email: "carol@example.com"}, ErrInvalidInput},
		{"空白用户名", SignupInput{Username: "  ", Email: "d@example.com", Password: "pw"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Signup(tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("期望 %v, 实际 %v", tt.want, err)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	e := newTestEnv(t)
	svc, tokens := newUserService(e)
	created, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}

	token, user, err := svc.Login("alice", "pw")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("登录返回的用户不对: %d", user.ID)
	}
	id, err := tokens.Parse(token)
	if err != nil || id != created.ID {
		t.Fatalf("token里的id不对: %d %v", id, err)
	}

	if _, _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("密码错误应该返回ErrInvalidCredentials, 实际 %v", err)
	}
	if _, _, err := svc.Login("nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("用户不存在也应该返回ErrInvalidCredentials, 实际 %v", err)
	}
}

func TestUserService_Availability(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)
	e.user(t, "alice", model.RoleUser)

	if ok, err := svc.IsUsernameAvailable("alice"); err != nil || ok {
		t.Fatalf("alice已被占用: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.IsUsernameAvailable("bob"); err != nil || !ok {
		t.Fatalf("bob应该可用: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.IsNicknameAvailable("alice"); err != nil || ok {
		t.Fatalf("昵称alice已被占用: ok=%v err=%v", ok, err)
	}
	if _, err := svc.IsNicknameAvailable(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("空昵称应该返回ErrInvalidInput, 实际 %v", err)
	}
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)
	user := e.user(t, "alice", model.RoleUser)
	if err := e.repos.UserRepo.UpdateFields(user.ID, map[string]interface{}{"phone_number": "010", "address1": "Seoul"}); err != nil {
		t.Fatal(err)
	}

	nickname := "Alice2"
	empty := ""
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Nickname: &nickname, Address1: &empty}, nil)
	if err != nil {
		t.Fatalf("修改失败: %v", err)
	}
	if updated.Nickname != "Alice2" {
		t.Errorf("昵称没改: %s", updated.Nickname)
	}
	if updated.Address1 != "" {
		t.Errorf("显式传空字符串应该清空: %q", updated.Address1)
	}
	if updated.PhoneNumber != "010" {
		t.Errorf("没传的字段不应该被改: %q", updated.PhoneNumber)
	}
}

func TestUserService_UpdateProfileImage(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)
	user := e.user(t, "alice", model.RoleUser)
	ctx := context.Background()

	first, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{}, fileHeader(t, "profileImage", "a.png", "image/png", pngBytes(t, 800, 400)))
	if err != nil {
		t.Fatalf("上传头像失败: %v", err)
	}
	if !strings.HasPrefix(first.ProfileImageKey, "profiles/") || !e.store.has(first.ProfileImageKey) {
		t.Fatalf("头像没有写入存储: %+v", first)
	}
	if first.ProfileImage != "https://cdn.test/"+first.ProfileImageKey {
		t.Fatalf("头像URL不对: %s", first.ProfileImage)
	}
	if _, ok := e.publisher.last(); ok {
		t.Fatal("第一次上传不应该有清理")
	}

	second, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{}, fileHeader(t, "profileImage", "b.png", "image/png", pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatal(err)
	}
	call, ok := e.publisher.last()
	if !ok || call.Reason != ReasonProfileReplace || call.Keys[0] != first.ProfileImageKey {
		t.Fatalf("替换头像应该清理旧文件: %+v", call)
	}
	if second.ProfileImageKey == first.ProfileImageKey {
		t.Fatal("新头像应该用新的key")
	}
}

func TestUserService_UpdateProfileRejectsBadImage(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)
	user := e.user(t, "alice", model.RoleUser)

	fh := fileHeader(t, "profileImage", "a.pdf", "application/pdf", []byte("%PDF"))
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{}, fh); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("不支持的类型应该是ErrInvalidInput, 实际 %v", err)
	}
}

func TestUserService_GetProfileMissing(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newUserService(e)
	if _, err := svc.GetProfile(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望ErrNotFound, 实际 %v", err)
	}
}
