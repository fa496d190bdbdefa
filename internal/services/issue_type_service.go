package services

import (
	"errors"
	"strings"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

var (
	ErrIssueTypeNotFound   = errors.New("问题分类未找到")
	ErrIssueTypeCombExists = errors.New("该分类组合已存在")
	ErrIssueTypeIncomplete = errors.New("大类、类型、条目均不能为空")
)

// CreateIssueTypeInput 定义创建问题分类所需的字段
type CreateIssueTypeInput struct {
	Category string
	Type     string
	Item     string
}

// UpdateIssueTypeInput 定义更新问题分类可修改的字段，nil 表示不修改
type UpdateIssueTypeInput struct {
	Category *string
	Type     *string
	Item     *string
	Current  *bool
}

// IssueTypeService 定义了问题分类服务的接口
type IssueTypeService interface {
	CreateIssueType(input CreateIssueTypeInput) (*models.IssueType, error)
	GetIssueTypeByID(id string) (*models.IssueType, error)
	GetAllIssueTypes() ([]models.IssueType, error)
	UpdateIssueType(id string, input UpdateIssueTypeInput) (*models.IssueType, error)
	DeleteIssueType(id string) error
}

// issueTypeService 是 IssueTypeService 的实现
type issueTypeService struct {
	repo repositories.IssueTypeRepository
}

// NewIssueTypeService 创建一个新的 issueTypeService 实例
func NewIssueTypeService(repo repositories.IssueTypeRepository) IssueTypeService {
	return &issueTypeService{repo: repo}
}

// CreateIssueType 创建问题分类，(大类, 类型, 条目) 三元组唯一
func (s *issueTypeService) CreateIssueType(input CreateIssueTypeInput) (*models.IssueType, error) {
	category := strings.TrimSpace(input.Category)
	typeName := strings.TrimSpace(input.Type)
	item := strings.TrimSpace(input.Item)
	if category == "" || typeName == "" || item == "" {
		return nil, ErrIssueTypeIncomplete
	}

	issueType := &models.IssueType{
		Category: category,
		Type:     typeName,
		Item:     item,
		Current:  true,
	}
	created, err := s.repo.CreateIssueType(issueType)
	if err != nil {
		if errors.Is(err, repositories.ErrIssueTypeCombExists) {
			return nil, ErrIssueTypeCombExists
		}
		return nil, err
	}
	return created, nil
}

// GetIssueTypeByID 根据ID获取问题分类
func (s *issueTypeService) GetIssueTypeByID(id string) (*models.IssueType, error) {
	issueType, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrIssueTypeNotFound
		}
		return nil, err
	}
	return issueType, nil
}

// GetAllIssueTypes 获取全部有效的问题分类
func (s *issueTypeService) GetAllIssueTypes() ([]models.IssueType, error) {
	return s.repo.GetAllIssueTypes()
}

// UpdateIssueType 更新问题分类字段
func (s *issueTypeService) UpdateIssueType(id string, input UpdateIssueTypeInput) (*models.IssueType, error) {
	updates := map[string]interface{}{}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, ErrIssueTypeIncomplete
		}
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Type != nil {
		if strings.TrimSpace(*input.Type) == "" {
			return nil, ErrIssueTypeIncomplete
		}
		updates["type"] = strings.TrimSpace(*input.Type)
	}
	if input.Item != nil {
		if strings.TrimSpace(*input.Item) == "" {
			return nil, ErrIssueTypeIncomplete
		}
		updates["item"] = strings.TrimSpace(*input.Item)
	}
	if input.Current != nil {
		updates["current"] = *input.Current
	}

	updated, err := s.repo.UpdateIssueType(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrIssueTypeNotFound
		}
		if errors.Is(err, repositories.ErrIssueTypeCombExists) {
			return nil, ErrIssueTypeCombExists
		}
		return nil, err
	}
	return updated, nil
}

// DeleteIssueType 删除问题分类
func (s *issueTypeService) DeleteIssueType(id string) error {
	if err := s.repo.DeleteIssueType(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrIssueTypeNotFound
		}
		return err
	}
	return nil
}
