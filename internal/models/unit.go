package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit 对应于数据库中的 units 表。
// (building_id, unit_number) 组合唯一，楼栋删除时级联删除单元。
type Unit struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus string `json:"documentStatus" gorm:"column:document_status;not null;default:'active';size:20"`

	BuildingID string `json:"buildingId" gorm:"column:building_id;size:36;not null;index:idx_units_building;uniqueIndex:uq_units_building_unit"`
	ProjectID  string `json:"projectId" gorm:"column:project_id;size:36;not null"`

	UnitNumber  string   `json:"unitNumber" gorm:"column:unit_number;not null;uniqueIndex:uq_units_building_unit"`
	FloorNumber *int     `json:"floorNumber,omitempty" gorm:"column:floor_number;index:idx_units_floor"`
	Bedrooms    *int     `json:"bedrooms,omitempty" gorm:"column:bedrooms"`
	AreaSqft    *float64 `json:"areaSqft,omitempty" gorm:"column:area_sqft"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`

	Building *Building `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE"`
	Project  *Project  `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName 指定 Unit 结构体对应的数据库表名
func (Unit) TableName() string {
	return "units"
}

// BeforeCreate 在创建前自动生成UUID主键
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
