package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

// UserWithCounts 管理后台的用户列表行
type UserWithCounts struct {
	model.User
	VideoCount   int64
	CommentCount int64
}

type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// 用户名或邮箱任一命中就返回
	FindByUsernameOrEmail(username, email string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByNickname(nickname string) (bool, error)
	// 只更新fields里出现的列
	UpdateFields(userID uint64, fields map[string]interface{}) error

	Count() (int64, error)
	FindRecent(limit int) ([]model.User, error)
	ListWithCounts(offset, limit int) ([]UserWithCounts, int64, error)

	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

// 用户插入表，并发注册撞上唯一索引时由上层用IsDuplicate判断
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	if err := r.db.First(&result, userID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// 根据用户名找用户
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByNickname(nickname string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateFields(userID uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	// 用map更新，零值（空字符串）也会被写进去
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) FindRecent(limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&users).Error
	return users, err
}

// 管理后台：分页用户列表，带上各自的视频数和评论数
func (r *userRepository) ListWithCounts(offset, limit int) ([]UserWithCounts, int64, error) {
	var total int64
	if err := r.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	if len(users) == 0 {
		return []UserWithCounts{}, total, nil
	}

	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	videoCounts, err := countGroupBy(r.db.Model(&model.Video{}), "author_id", ids)
	if err != nil {
		return nil, 0, err
	}
	commentCounts, err := countGroupBy(r.db.Model(&model.Comment{}), "author_id", ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]UserWithCounts, 0, len(users))
	for _, u := range users {
		result = append(result, UserWithCounts{
			User:         u,
			VideoCount:   videoCounts[u.ID],
			CommentCount: commentCounts[u.ID],
		})
	}
	return result, total, nil
}

type groupCount struct {
	GroupKey uint64
	Total    int64
}

// countGroupBy 一次查询把一批ID各自的行数查出来，避免N+1
func countGroupBy(query *gorm.DB, column string, ids []uint64) (map[uint64]int64, error) {
	var rows []groupCount
	err := query.
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
