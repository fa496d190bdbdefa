package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// PaginationInfo 定义了通用的分页信息结构
type PaginationInfo struct {
	TotalCount int64 `json:"totalCount"`
	HasNext    bool  `json:"hasNext"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

// PaginationQuery 列表接口的分页查询参数
type PaginationQuery struct {
	PageNumber int `form:"pageNumber,default=1"`
	PageSize   int `form:"pageSize,default=10"`
}

// bindPagination 绑定并规范化分页参数
func bindPagination(c *gin.Context) (int, int, error) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return 0, 0, err
	}
	pageNumber, pageSize := utils.NormalizePagination(query.PageNumber, query.PageSize)
	return pageNumber, pageSize, nil
}

// uuidParam 读取并校验UUID格式的路径参数，格式非法时直接响应400
func uuidParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := utils.ValidateUUID(id); err != nil {
		utils.RespondValidationError(c, err.Error())
		return "", false
	}
	return id, true
}

// currentCaller 从 gin 上下文提取已认证的调用者身份
func currentCaller(c *gin.Context) (services.Caller, bool) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{ID: principal.ID, Role: principal.Role}, true
}
