package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt, DeletedAt
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Email     string `gorm:"size:128;uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"` // 只存bcrypt哈希，缓存序列化时也不带
	Nickname  string `gorm:"size:64;index"`
	Role      Role   `gorm:"size:16;not null;default:USER"`

	BirthDate   string `gorm:"size:16"` // YYYY-MM-DD
	PhoneNumber string `gorm:"size:32"`
	Gender      string `gorm:"size:16"`
	ZipCode     string `gorm:"size:16"`
	Address1    string
	Address2    string

	ProfileImage    string // 对外可访问的URL
	ProfileImageKey string // 对象存储里的key，替换头像时用来清理旧文件

	Videos []Video `gorm:"foreignKey:AuthorID"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
