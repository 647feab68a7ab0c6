package auth

import (
	"WeTube/internal/model"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// State 可选鉴权的三种结果
type State int

const (
	// 没带Authorization头
	Anonymous State = iota
	// token有效并且用户存在
	Authenticated
	// 带了头但token格式不对、签名不对、过期或用户已不存在；按匿名处理
	Ignored
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case Ignored:
		return "ignored"
	}
	return "unknown"
}

// Identity 一次请求解析出来的身份
type Identity struct {
	State State
	User  *model.User
	// Ignored时记录原因，只用于日志
	Reason error
}

// UserID 匿名时返回0
func (id Identity) UserID() uint64 {
	if id.State != Authenticated || id.User == nil {
		return 0
	}
	return id.User.ID
}

func (id Identity) IsAuthenticated() bool {
	return id.State == Authenticated && id.User != nil
}

var (
	ErrMissingToken   = errors.New("请求未包含授权令牌")
	ErrMalformedToken = errors.New("授权令牌格式不正确")
	ErrInvalidToken   = errors.New("无效的授权令牌")
	ErrUnknownUser    = errors.New("令牌对应的用户不存在")
)

// UserFinder 只需要按ID查用户
type UserFinder interface {
	FindByID(userID uint64) (*model.User, error)
}

// Resolver 把Authorization头解析成Identity
type Resolver struct {
	tokens *TokenIssuer
	users  UserFinder
}

func NewResolver(tokens *TokenIssuer, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve 令牌的问题都落在Ignored里；只有查用户时数据库出错才返回error
func (r *Resolver) Resolve(authHeader string) (Identity, error) {
	if authHeader == "" {
		return Identity{State: Anonymous}, nil
	}
	tokenString, ok := BearerToken(authHeader)
	if !ok {
		return Identity{State: Ignored, Reason: ErrMalformedToken}, nil
	}
	userID, err := r.tokens.Parse(tokenString)
	if err != nil {
		return Identity{State: Ignored, Reason: errors.Join(ErrInvalidToken, err)}, nil
	}
	user, err := r.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{State: Ignored, Reason: errors.Join(ErrUnknownUser, err)}, nil
	}
	if err != nil {
		return Identity{}, err
	}
	return Identity{State: Authenticated, User: user}, nil
}

// BearerToken 通常Token的格式是 "Bearer [token]"
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
