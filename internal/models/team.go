package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team 对应于数据库中的 teams 表。团队名称全局唯一。
type Team struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus bool   `json:"documentStatus" gorm:"column:document_status;not null;default:true"`

	TeamName      string   `json:"teamName" gorm:"column:team_name;unique;not null"`
	TeamInitials  *string  `json:"teamInitials,omitempty" gorm:"column:team_initials"`
	TeamType      *string  `json:"teamType,omitempty" gorm:"column:team_type"`
	TeamAddress   *string  `json:"teamAddress,omitempty" gorm:"column:team_address"`
	TeamTelephone *string  `json:"teamTelephone,omitempty" gorm:"column:team_telephone"`
	TeamEmail     *string  `json:"teamEmail,omitempty" gorm:"column:team_email"`
	TeamRole      UserRole `json:"teamRole" gorm:"column:team_role;not null;default:'Contractor Team';size:50"`
	Active        bool     `json:"active" gorm:"column:active;not null;default:true"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

// TableName 指定 Team 结构体对应的数据库表名
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate 在创建前自动生成UUID主键
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
