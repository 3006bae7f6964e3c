package admin

import (
	"strings"

	handlershared "github.com/Markwebsolutions/abandoncart/internal/http/handlers/shared"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/service"

	"github.com/gin-gonic/gin"
)

// CartFieldRequest 直接修改基线字段请求
type CartFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// GetCarts 库内弃单列表
func (h *Handler) GetCarts(c *gin.Context) {
	query, ok := h.parseCartQuery(c)
	if !ok {
		return
	}
	page, err := h.CartService.ListStored(query)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, page)
}

// GetLiveCarts 直接从 Shopify 拉取弃单列表
func (h *Handler) GetLiveCarts(c *gin.Context) {
	query, ok := h.parseCartQuery(c)
	if !ok {
		return
	}
	page, err := h.CartService.ListLive(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, page)
}

// GetRecentCarts 最近弃单
func (h *Handler) GetRecentCarts(c *gin.Context) {
	carts, err := h.CartService.Recent(handlershared.QueryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, carts)
}

// GetCart 弃单详情
func (h *Handler) GetCart(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	cart, err := h.CartService.Get(cartID)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// UpdateCartField 直接修改 status/priority 基线，不写跟进记录
func (h *Handler) UpdateCartField(c *gin.Context) {
	cartID, ok := handlershared.ParseStringParam(c, "id", "error.cart_id_invalid")
	if !ok {
		return
	}
	var req CartFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	row, err := h.CartService.UpdateField(cartID, req.Field, req.Value)
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, row)
}

// parseCartQuery 解析窗口、过滤与分页参数，失败时已写响应
func (h *Handler) parseCartQuery(c *gin.Context) (service.CartQuery, bool) {
	var query service.CartQuery

	start, err := handlershared.ParseTimeQuery(c, "start")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
		return query, false
	}
	end, err := handlershared.ParseTimeQuery(c, "end")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
		return query, false
	}
	dateFrom, err := handlershared.ParseTimeQuery(c, "date_from")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
		return query, false
	}
	dateTo, err := handlershared.ParseTimeQuery(c, "date_to")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
		return query, false
	}
	status, err := service.ParseStatusFilter(c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "error.bad_request")
		return query, false
	}

	if start != nil {
		query.Window.Start = *start
	}
	if end != nil {
		query.Window.End = *end
	}
	if shift := handlershared.QueryInt(c, "shift", 0); shift != 0 {
		window := h.CartService.DefaultWindow()
		if !query.Window.Start.IsZero() {
			window.Start = query.Window.Start
		}
		if !query.Window.End.IsZero() {
			window.End = query.Window.End
		}
		query.Window = window.Shift(shift)
	}

	query.Filter = service.CartFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   status,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}
	query.Page, query.PageSize = handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page", 1),
		handlershared.QueryInt(c, "page_size", h.Config.Cart.PageSize),
	)
	return query, true
}
