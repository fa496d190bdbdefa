package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin 对应于数据库中的 admins 表。
// 管理员账号在团队体系之外，始终等价于超级管理员角色。
type Admin struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus bool   `json:"documentStatus" gorm:"column:document_status;not null;default:true"`

	AdminUserName string `json:"adminUserName" gorm:"column:admin_user_name;not null"`
	AdminUserType string `json:"adminUserType" gorm:"column:admin_user_type;not null;default:'Super Admin/Admin'"`
	Email         string `json:"email" gorm:"column:email;unique;not null"`
	PasswordHash  string `json:"-" gorm:"column:password_hash;not null"` // 密码哈希不通过JSON暴露

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

// TableName 指定 Admin 结构体对应的数据库表名
func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate 在创建前自动生成UUID主键
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
