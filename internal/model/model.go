package model

import (
	"fmt"

	"madrese/auth-service/internal/model/user"

	"gorm.io/gorm"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []interface{} {
	return []interface{}{
		&user.User{},
	}
}

func InitTable(db *gorm.DB) error {
	models := GetModels()

	// 执行自动迁移
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}

	return nil
}
