package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 对应于数据库中的 users 表。
// 每个用户有且仅有一个角色，可选地隶属于一个团队（团队删除后置空）。
type User struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus string `json:"documentStatus" gorm:"column:document_status;not null;default:'active';size:20"`

	FullName     string   `json:"fullName" gorm:"column:full_name;not null"`
	Email        string   `json:"email" gorm:"column:email;unique;not null"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"` // 密码哈希不通过JSON暴露
	UserRole     UserRole `json:"userRole" gorm:"column:user_role;not null;size:50"`

	TeamID *string `json:"teamId,omitempty" gorm:"column:team_id;size:36"`

	IsProjectAdmin bool `json:"isProjectAdmin" gorm:"column:is_project_admin;not null;default:false"`
	IsTeamAdmin    bool `json:"isTeamAdmin" gorm:"column:is_team_admin;not null;default:false"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`

	Team *Team `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 在创建前自动生成UUID主键
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
