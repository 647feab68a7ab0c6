package service

import (
	"WeTube/internal/auth"
	"WeTube/internal/metrics"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"WeTube/internal/storage"
	"WeTube/pkg/logger"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SignupInput 注册时可以一次填好的资料
type SignupInput struct {
	Username     string
	Email        string
	Password     string
	Nickname     string
	BirthDate    string
	PhoneNumber  string
	Gender       string
	ZipCode      string
	Address1     string
	Address2     string
	ProfileImage string
}

// ProfileUpdate nil表示请求里没有这个字段，不修改
type ProfileUpdate struct {
	Nickname    *string
	PhoneNumber *string
	ZipCode     *string
	Address1    *string
	Address2    *string
	BirthDate   *string
	Gender      *string
}

func (p ProfileUpdate) columns() map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("nickname", p.Nickname)
	set("phone_number", p.PhoneNumber)
	set("zip_code", p.ZipCode)
	set("address1", p.Address1)
	set("address2", p.Address2)
	set("birth_date", p.BirthDate)
	set("gender", p.Gender)
	return fields
}

// 用户服务接口：注册、登录、查重、资料
type UserService interface {
	Signup(in SignupInput) (*model.User, error)
	Login(username, password string) (string, *model.User, error)
	IsUsernameAvailable(username string) (bool, error)
	IsNicknameAvailable(nickname string) (bool, error)
	GetProfile(userID uint64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate, image *multipart.FileHeader) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenIssuer
	store     storage.ObjectStore
	publisher MediaPublisher
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, store storage.ObjectStore, publisher MediaPublisher) UserService {
	return &userService{
		userRepo:  userRepo,
		tokens:    tokens,
		store:     store,
		publisher: publisher,
	}
}

// 注册逻辑：1、必填项检查 2、用户名或邮箱重复检查 3、密码加密存储 4、插入数据库（并发注册撞唯一索引也算重复）
func (s *userService) Signup(in SignupInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: 用户名、邮箱和密码不能为空", ErrInvalidInput)
	}

	_, err := s.userRepo.FindByUsernameOrEmail(in.Username, in.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: 用户名或邮箱已被使用", ErrDuplicate)
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	// DefaultCost就是10轮
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hashedPassword),
		Nickname:     in.Nickname,
		Role:         model.RoleUser,
		BirthDate:    in.BirthDate,
		PhoneNumber:  in.PhoneNumber,
		Gender:       in.Gender,
		ZipCode:      in.ZipCode,
		Address1:     in.Address1,
		Address2:     in.Address2,
		ProfileImage: in.ProfileImage,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: 用户名或邮箱已被使用", ErrDuplicate)
		}
		return nil, err
	}
	metrics.SignupsTotal.Inc()
	return newUser, nil
}

// 登录逻辑：用户不存在和密码错误返回同一个错误，不让调用方区分
func (s *userService) Login(username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

func (s *userService) IsUsernameAvailable(username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, fmt.Errorf("%w: 用户名不能为空", ErrInvalidInput)
	}
	exists, err := s.userRepo.ExistsByUsername(username)
	return !exists, err
}

func (s *userService) IsNicknameAvailable(nickname string) (bool, error) {
	if strings.TrimSpace(nickname) == "" {
		return false, fmt.Errorf("%w: 昵称不能为空", ErrInvalidInput)
	}
	exists, err := s.userRepo.ExistsByNickname(nickname)
	return !exists, err
}

func (s *userService) GetProfile(userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// 修改资料：1、有头像就先缩放上传 2、只写请求里带了的字段 3、写库失败清理新头像，成功清理旧头像
func (s *userService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate, image *multipart.FileHeader) (*model.User, error) {
	current, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	fields := update.columns()

	var uploaded storage.Object
	if image != nil {
		uploaded, err = storage.UploadFittedImage(ctx, s.store, storage.ProfileImageRule, image, storage.ProfileImageSize)
		if err != nil {
			return nil, uploadError(err)
		}
		fields["profile_image"] = uploaded.URL
		fields["profile_image_key"] = uploaded.Key
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		s.publisher.PublishCleanup(ctx, ReasonUploadRollback, uploaded.Key)
		return nil, err
	}
	if uploaded.Key != "" && current.ProfileImageKey != "" {
		s.publisher.PublishCleanup(ctx, ReasonProfileReplace, current.ProfileImageKey)
	}
	logger.Log.WithField("user_id", userID).WithField("fields", len(fields)).Debug("用户资料已更新")
	return s.GetProfile(userID)
}

// uploadError 校验类错误是400，其余按存储故障处理
func uploadError(err error) error {
	if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
