package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Building 对应于数据库中的 buildings 表。
// (project_id, building_code) 组合唯一，项目删除时级联删除楼栋。
type Building struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus string `json:"documentStatus" gorm:"column:document_status;not null;default:'active';size:20"`

	ProjectID string `json:"projectId" gorm:"column:project_id;size:36;not null;index:idx_buildings_project;uniqueIndex:uq_buildings_project_code"`

	BuildingCode string  `json:"buildingCode" gorm:"column:building_code;not null;uniqueIndex:uq_buildings_project_code"` // 例如 "T1", "Block-A"
	BuildingName string  `json:"buildingName" gorm:"column:building_name;not null"`                                       // 例如 "Tower 1"
	Floors       *int    `json:"floors,omitempty" gorm:"column:floors"`
	Address      *string `json:"address,omitempty" gorm:"column:address"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName 指定 Building 结构体对应的数据库表名
func (Building) TableName() string {
	return "buildings"
}

// BeforeCreate 在创建前自动生成UUID主键
func (b *Building) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
