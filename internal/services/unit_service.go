package services

import (
	"errors"
	"strings"
	"time"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

var (
	ErrUnitNumberExists   = errors.New("同一楼栋内单元号已存在")
	ErrUnitNumberRequired = errors.New("单元号不能为空")
)

// CreateUnitInput 定义创建单元所需的字段
type CreateUnitInput struct {
	BuildingID  string
	UnitNumber  string
	FloorNumber *int
	Bedrooms    *int
	AreaSqft    *float64
}

// UpdateUnitInput 定义更新单元可修改的字段，nil 表示不修改
type UpdateUnitInput struct {
	UnitNumber  *string
	FloorNumber *int
	Bedrooms    *int
	AreaSqft    *float64
}

// UnitService 定义了单元服务的接口
type UnitService interface {
	CreateUnit(caller Caller, input CreateUnitInput) (*models.Unit, error)
	GetUnitByID(id string) (*models.Unit, error)
	GetUnitsByBuildingID(buildingID string) ([]models.Unit, error)
	UpdateUnit(caller Caller, id string, input UpdateUnitInput) (*models.Unit, error)
	// DeleteUnit 删除单元；引用它的问题保留，unit_id 置空
	DeleteUnit(id string) error
}

// unitService 是 UnitService 的实现
type unitService struct {
	repo         repositories.UnitRepository
	buildingRepo repositories.BuildingRepository
}

// NewUnitService 创建一个新的 unitService 实例
func NewUnitService(repo repositories.UnitRepository, buildingRepo repositories.BuildingRepository) UnitService {
	return &unitService{repo: repo, buildingRepo: buildingRepo}
}

// CreateUnit 创建单元，(楼栋, 单元号) 组合唯一。
// 项目ID从所属楼栋继承，不接受调用方指定。
func (s *unitService) CreateUnit(caller Caller, input CreateUnitInput) (*models.Unit, error) {
	number := strings.TrimSpace(input.UnitNumber)
	if number == "" {
		return nil, ErrUnitNumberRequired
	}

	building, err := s.buildingRepo.FindByID(input.BuildingID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}

	unit := &models.Unit{
		DocumentStatus: models.DocumentStatusActive,
		BuildingID:     building.ID,
		ProjectID:      building.ProjectID,
		UnitNumber:     number,
		FloorNumber:    input.FloorNumber,
		Bedrooms:       input.Bedrooms,
		AreaSqft:       input.AreaSqft,
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateUnit(unit)
	if err != nil {
		if errors.Is(err, repositories.ErrUnitNumberExists) {
			return nil, ErrUnitNumberExists
		}
		return nil, err
	}
	return created, nil
}

// GetUnitByID 根据ID获取单元
func (s *unitService) GetUnitByID(id string) (*models.Unit, error) {
	unit, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return unit, nil
}

// GetUnitsByBuildingID 获取楼栋下全部单元
func (s *unitService) GetUnitsByBuildingID(buildingID string) ([]models.Unit, error) {
	return s.repo.GetUnitsByBuildingID(buildingID)
}

// UpdateUnit 更新单元字段
func (s *unitService) UpdateUnit(caller Caller, id string, input UpdateUnitInput) (*models.Unit, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.UnitNumber != nil {
		number := strings.TrimSpace(*input.UnitNumber)
		if number == "" {
			return nil, ErrUnitNumberRequired
		}
		updates["unit_number"] = number
	}
	if input.FloorNumber != nil {
		updates["floor_number"] = *input.FloorNumber
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.AreaSqft != nil {
		updates["area_sqft"] = *input.AreaSqft
	}

	updated, err := s.repo.UpdateUnit(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		if errors.Is(err, repositories.ErrUnitNumberExists) {
			return nil, ErrUnitNumberExists
		}
		return nil, err
	}
	return updated, nil
}

// DeleteUnit 删除单元
func (s *unitService) DeleteUnit(id string) error {
	if err := s.repo.DeleteUnit(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		return err
	}
	return nil
}
