package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatus 软删除标记的取值（硬删除只在明确暴露的接口上执行）
const (
	DocumentStatusActive   = "active"
	DocumentStatusArchived = "archived"
	DocumentStatusDeleted  = "deleted"
)

// Project 对应于数据库中的 projects 表，是包含层级的根实体。
type Project struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus string `json:"documentStatus" gorm:"column:document_status;not null;default:'active';size:20"`

	ProjectCode string  `json:"projectCode" gorm:"column:project_code;unique;not null"`
	ProjectName string  `json:"projectName" gorm:"column:project_name;not null"`
	Description *string `json:"description,omitempty" gorm:"column:description"`
	ClientName  *string `json:"clientName,omitempty" gorm:"column:client_name"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

// TableName 指定 Project 结构体对应的数据库表名
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate 在创建前自动生成UUID主键
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
