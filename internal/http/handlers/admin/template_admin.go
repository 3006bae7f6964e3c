package admin

import (
	handlershared "github.com/Markwebsolutions/abandoncart/internal/http/handlers/shared"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
	"github.com/Markwebsolutions/abandoncart/internal/service"

	"github.com/gin-gonic/gin"
)

// TemplateRequest 模板创建/更新请求；更新时未传字段保持不变
type TemplateRequest struct {
	Type       *string `json:"type"`
	Name       *string `json:"name"`
	Text       *string `json:"text"`
	Category   *string `json:"category"`
	IsStarred  *bool   `json:"is_starred"`
	UsageCount *int    `json:"usage_count"`
}

// RenderTemplateRequest 模板渲染请求
type RenderTemplateRequest struct {
	CartID string `json:"cart_id" binding:"required"`
}

func (r TemplateRequest) toInput() service.TemplateInput {
	return service.TemplateInput{
		Type:       r.Type,
		Name:       r.Name,
		Text:       r.Text,
		Category:   r.Category,
		IsStarred:  r.IsStarred,
		UsageCount: r.UsageCount,
	}
}

// GetTemplates 模板列表
func (h *Handler) GetTemplates(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page", 1),
		handlershared.QueryInt(c, "page_size", 20),
	)
	templates, total, err := h.TemplateService.List(repository.TemplateListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.SuccessWithPage(c, templates, response.NewPagination(page, pageSize, total))
}

// CreateTemplate 创建模板
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	template, err := h.TemplateService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, template)
}

// UpdateTemplate 局部更新模板
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.template_id_invalid")
	if !ok {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	template, err := h.TemplateService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, template)
}

// DeleteTemplate 删除模板
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.template_id_invalid")
	if !ok {
		return
	}
	if err := h.TemplateService.Delete(id); err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// RenderTemplate 用弃单填充模板
func (h *Handler) RenderTemplate(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.template_id_invalid")
	if !ok {
		return
	}
	var req RenderTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rendered, err := h.TemplateService.Render(id, req.CartID)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, rendered)
}
