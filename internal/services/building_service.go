package services

import (
	"errors"
	"strings"
	"time"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

var (
	ErrBuildingNotFound     = errors.New("楼栋未找到")
	ErrBuildingCodeExists   = errors.New("同一项目内楼栋编码已存在")
	ErrBuildingCodeRequired = errors.New("楼栋编码不能为空")
	ErrBuildingNameRequired = errors.New("楼栋名称不能为空")
)

// CreateBuildingInput 定义创建楼栋所需的字段
type CreateBuildingInput struct {
	ProjectID    string
	BuildingCode string
	BuildingName string
	Floors       *int
	Address      *string
}

// UpdateBuildingInput 定义更新楼栋可修改的字段，nil 表示不修改
type UpdateBuildingInput struct {
	BuildingName *string
	Floors       *int
	Address      *string
}

// BuildingService 定义了楼栋服务的接口
type BuildingService interface {
	CreateBuilding(caller Caller, input CreateBuildingInput) (*models.Building, error)
	GetBuildingByID(id string) (*models.Building, error)
	GetBuildingsByProjectID(projectID string) ([]models.Building, error)
	UpdateBuilding(caller Caller, id string, input UpdateBuildingInput) (*models.Building, error)
	DeleteBuilding(id string) error
}

// buildingService 是 BuildingService 的实现
type buildingService struct {
	repo        repositories.BuildingRepository
	projectRepo repositories.ProjectRepository
}

// NewBuildingService 创建一个新的 buildingService 实例
func NewBuildingService(repo repositories.BuildingRepository, projectRepo repositories.ProjectRepository) BuildingService {
	return &buildingService{repo: repo, projectRepo: projectRepo}
}

// CreateBuilding 创建楼栋，(项目, 楼栋编码) 组合唯一
func (s *buildingService) CreateBuilding(caller Caller, input CreateBuildingInput) (*models.Building, error) {
	code := strings.TrimSpace(input.BuildingCode)
	if code == "" {
		return nil, ErrBuildingCodeRequired
	}
	name := strings.TrimSpace(input.BuildingName)
	if name == "" {
		return nil, ErrBuildingNameRequired
	}

	// 项目必须存在
	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	building := &models.Building{
		DocumentStatus: models.DocumentStatusActive,
		ProjectID:      input.ProjectID,
		BuildingCode:   code,
		BuildingName:   name,
		Floors:         input.Floors,
		Address:        input.Address,
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateBuilding(building)
	if err != nil {
		if errors.Is(err, repositories.ErrBuildingCodeExists) {
			return nil, ErrBuildingCodeExists
		}
		return nil, err
	}
	return created, nil
}

// GetBuildingByID 根据ID获取楼栋
func (s *buildingService) GetBuildingByID(id string) (*models.Building, error) {
	building, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return building, nil
}

// GetBuildingsByProjectID 获取项目下全部楼栋
func (s *buildingService) GetBuildingsByProjectID(projectID string) ([]models.Building, error) {
	return s.repo.GetBuildingsByProjectID(projectID)
}

// UpdateBuilding 更新楼栋字段（楼栋编码创建后不可变更）
func (s *buildingService) UpdateBuilding(caller Caller, id string, input UpdateBuildingInput) (*models.Building, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.BuildingName != nil {
		name := strings.TrimSpace(*input.BuildingName)
		if name == "" {
			return nil, ErrBuildingNameRequired
		}
		updates["building_name"] = name
	}
	if input.Floors != nil {
		updates["floors"] = *input.Floors
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}

	updated, err := s.repo.UpdateBuilding(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteBuilding 删除楼栋，其下单元级联删除
func (s *buildingService) DeleteBuilding(id string) error {
	if err := s.repo.DeleteBuilding(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}
	return nil
}
