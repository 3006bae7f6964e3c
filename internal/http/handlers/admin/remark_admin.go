package admin

import (
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	handlershared "github.com/Markwebsolutions/abandoncart/internal/http/handlers/shared"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/service"

	"github.com/gin-gonic/gin"
)

// AppendRemarkRequest 追加跟进记录请求
type AppendRemarkRequest struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Agent   string  `json:"agent"`
	Status  *string `json:"status"`
}

// CustomerResponseRequest 记录客户回复请求
type CustomerResponseRequest struct {
	Medium   string `json:"medium"`
	Response string `json:"response"`
}

// EditResponseRequest 修改回复请求
type EditResponseRequest struct {
	Response string `json:"response"`
}

// ChangeStatusRequest 状态/优先级变更请求，field 默认为 status
type ChangeStatusRequest struct {
	Field string `json:"field"`
	Value string `json:"value" binding:"required"`
	Agent string `json:"agent"`
}

// GetCartRemarks 跟进记录列表
func (h *Handler) GetCartRemarks(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	remarks, err := h.RemarkService.List(cartID)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, remarks)
}

// CreateCartRemark 追加跟进记录，可带 status（仅记录，不改基线）
func (h *Handler) CreateCartRemark(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	var req AppendRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := h.RemarkService.Append(cartID, service.AppendRemarkInput{
		Type:    req.Type,
		Message: req.Message,
		Agent:   req.Agent,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, state)
}

// CreateCustomerResponse 记录客户回复
func (h *Handler) CreateCustomerResponse(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	var req CustomerResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := h.RemarkService.RecordCustomerResponse(cartID, req.Medium, req.Response)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, state)
}

// UpdateRemarkResponse 修改回复（追加新记录）
func (h *Handler) UpdateRemarkResponse(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	remarkID, ok := handlershared.ParseUintParam(c, "remark_id", "error.remark_id_invalid")
	if !ok {
		return
	}
	var req EditResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := h.RemarkService.EditResponse(cartID, remarkID, req.Response)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, state)
}

// DeleteCartRemark 删除跟进记录并返回剩余记录
func (h *Handler) DeleteCartRemark(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	remarkID, ok := handlershared.ParseUintParam(c, "remark_id", "error.remark_id_invalid")
	if !ok {
		return
	}
	state, err := h.RemarkService.Delete(cartID, remarkID)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, state)
}

// GetCartStatus 有效状态
func (h *Handler) GetCartStatus(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	view, err := h.RemarkService.Status(cartID)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, view)
}

// ChangeCartStatus 变更状态或优先级：写跟进记录并同步基线
func (h *Handler) ChangeCartStatus(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	field := strings.TrimSpace(req.Field)
	if field == "" {
		field = constants.CartFieldStatus
	}
	result, err := h.RemarkService.ChangeField(cartID, field, req.Value, req.Agent)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, result)
}
