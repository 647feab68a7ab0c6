package data

import (
	"WeTube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// fn返回nil提交，返回error或panic回滚
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
type TransactionalRepositories struct {
	UserRepo         repository.UserRepository
	VideoRepo        repository.VideoRepository
	HashtagRepo      repository.HashtagRepository
	CommentRepo      repository.CommentRepository
	LikeRepo         repository.LikeRepository
	SubscriptionRepo repository.SubscriptionRepository
	HistoryRepo      repository.HistoryRepository
	NoticeRepo       repository.NoticeRepository
	InquiryRepo      repository.InquiryRepository
}

// Repositories 是非事务的原始仓库集合，UnitOfWork从它们派生事务副本
type Repositories TransactionalRepositories

// NewRepositories 用同一个db把所有仓库建出来
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		UserRepo:         repository.NewUserRepository(db),
		VideoRepo:        repository.NewVideoRepository(db),
		HashtagRepo:      repository.NewHashtagRepository(db),
		CommentRepo:      repository.NewCommentRepository(db),
		LikeRepo:         repository.NewLikeRepository(db),
		SubscriptionRepo: repository.NewSubscriptionRepository(db),
		HistoryRepo:      repository.NewHistoryRepository(db),
		NoticeRepo:       repository.NewNoticeRepository(db),
		InquiryRepo:      repository.NewInquiryRepository(db),
	}
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db    *gorm.DB
	repos *Repositories
}

// NewUnitOfWork 创建一个新的、基于GORM的“工作单元”。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(db *gorm.DB, repos *Repositories) UnitOfWork {
	return &gormUnitOfWork{db: db, repos: repos}
}

// 只能接收 fn func(repos *TransactionalRepositories) error 这样的函数，并为其创建事务
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	// GORM创建了一个事务，并把这个事务的句柄作为参数tx传递给了这个匿名函数
	return u.db.Transaction(func(tx *gorm.DB) error {
		// 临时创建“一次性”的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			UserRepo:         u.repos.UserRepo.WithTx(tx),
			VideoRepo:        u.repos.VideoRepo.WithTx(tx),
			HashtagRepo:      u.repos.HashtagRepo.WithTx(tx),
			CommentRepo:      u.repos.CommentRepo.WithTx(tx),
			LikeRepo:         u.repos.LikeRepo.WithTx(tx),
			SubscriptionRepo: u.repos.SubscriptionRepo.WithTx(tx),
			HistoryRepo:      u.repos.HistoryRepo.WithTx(tx),
			NoticeRepo:       u.repos.NoticeRepo.WithTx(tx),
			InquiryRepo:      u.repos.InquiryRepo.WithTx(tx),
		}
		// 回调业务逻辑，并将其执行结果作为整个事务成功或失败的依据
		return fn(transactionalRepos)
	})
}
