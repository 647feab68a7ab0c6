package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsDuplicate 判断是不是唯一索引冲突
// 开了TranslateError时gorm会翻译成ErrDuplicatedKey；没翻译的情况下mysql的错误号1062就是 "Duplicate entry"
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// IsNotFound 只是errors.Is(err, gorm.ErrRecordNotFound)的简写
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

