package model

import (
	"time"

	"gorm.io/gorm"
)

// gorm自带的Model里ID是uint，统一成uint64，所以自己搞了个base结构体
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// AllModels 是AutoMigrate需要的全部模型，server、seeder和测试共用一份
func AllModels() []interface{} {
	return []interface{}{
		&User{}, &Hashtag{}, &Video{}, &Comment{}, &VideoLike{},
		&Subscription{}, &VideoHistory{}, &Notice{}, &Inquiry{},
	}
}
