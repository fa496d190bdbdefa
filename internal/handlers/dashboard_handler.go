package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// DashboardHandler 封装了仪表盘相关的 HTTP 处理逻辑
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler 创建一个新的 DashboardHandler 实例
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetSummary godoc
// @Summary 仪表盘汇总
// @Description 按状态与优先级统计问题数量。管理员看全量，其余角色只看各自范围。
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.DashboardSummary} "汇总数据"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Router /dashboard/summary [get]
// @Security BearerAuth
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	summary, err := h.service.GetSummary(caller)
	if err != nil {
		utils.RespondInternalServerError(c, "获取仪表盘数据失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, summary, "")
}
