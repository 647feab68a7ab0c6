package dto

import (
	"WeTube/internal/model"
	"time"
)

// AuthorSummary 列表里嵌的作者信息
type AuthorSummary struct {
	ID           uint64 `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
}

func ToAuthorSummary(u *model.User, fallbackID uint64) AuthorSummary {
	// 检查Author是否被成功preload，没有就只返回ID
	if u == nil || u.ID == 0 {
		return AuthorSummary{ID: fallbackID}
	}
	return AuthorSummary{ID: u.ID, Nickname: u.Nickname, ProfileImage: u.ProfileImage}
}

// UserProfile 对外的用户资料，永远不带密码
type UserProfile struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	Role         string    `json:"role"`
	BirthDate    string    `json:"birth_date"`
	PhoneNumber  string    `json:"phone_number"`
	Gender       string    `json:"gender"`
	ZipCode      string    `json:"zip_code"`
	Address1     string    `json:"address1"`
	Address2     string    `json:"address2"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToUserProfile(u *model.User) UserProfile {
	return UserProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Nickname:     u.Nickname,
		Role:         string(u.Role),
		BirthDate:    u.BirthDate,
		PhoneNumber:  u.PhoneNumber,
		Gender:       u.Gender,
		ZipCode:      u.ZipCode,
		Address1:     u.Address1,
		Address2:     u.Address2,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// ChannelOwner 频道页只公开这些
type ChannelOwner struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToChannelOwner(u *model.User) ChannelOwner {
	return ChannelOwner{
		ID:           u.ID,
		Username:     u.Username,
		Nickname:     u.Nickname,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}
