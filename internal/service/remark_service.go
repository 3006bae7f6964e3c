package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
)

// RemarkService 跟进记录服务（只追加的历史，状态变更也记录在此）
type RemarkService struct {
	remarks   repository.RemarkRepository
	checkouts repository.CheckoutRepository
	now       func() time.Time
}

// NewRemarkService 创建跟进记录服务
func NewRemarkService(remarks repository.RemarkRepository, checkouts repository.CheckoutRepository) *RemarkService {
	return &RemarkService{remarks: remarks, checkouts: checkouts, now: time.Now}
}

// AppendRemarkInput 追加记录输入
type AppendRemarkInput struct {
	Type    string
	Message string
	Agent   string
	// Status 非空时记录带状态，只影响有效状态，不改基线列
	Status *string
}

// CartRemarkState 写操作后的弃单记录快照
type CartRemarkState struct {
	CartID          string              `json:"cart_id"`
	Remark          *models.CartRemark  `json:"remark,omitempty"`
	Remarks         []models.CartRemark `json:"remarks"`
	BaselineStatus  string              `json:"baseline_status"`
	EffectiveStatus string              `json:"effective_status"`
}

// CartFieldChangeResult 状态/优先级变更结果
type CartFieldChangeResult struct {
	CartRemarkState
	Cart            *models.AbandonedCheckout `json:"cart,omitempty"`
	BaselineUpdated bool                      `json:"baseline_updated"`
	BaselineError   string                    `json:"baseline_error,omitempty"`
}

// CartStatusView 状态查询结果
type CartStatusView struct {
	CartID          string `json:"cart_id"`
	BaselineStatus  string `json:"baseline_status"`
	EffectiveStatus string `json:"effective_status"`
}

// List 按创建时间正序列出记录
func (s *RemarkService) List(cartID string) ([]models.CartRemark, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrCartNotFound
	}
	remarks, err := s.remarks.ListByCart(cartID)
	if err != nil {
		return nil, err
	}
	if remarks == nil {
		remarks = []models.CartRemark{}
	}
	return remarks, nil
}

// Append 追加一条跟进记录。带 status 时 type 缺省为 status-change
func (s *RemarkService) Append(cartID string, input AppendRemarkInput) (*CartRemarkState, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrCartNotFound
	}
	var status *string
	if input.Status != nil {
		value := strings.ToLower(strings.TrimSpace(*input.Status))
		if !constants.IsCartStatus(value) {
			return nil, ErrInvalidCartStatus
		}
		status = &value
	}
	remarkType := strings.ToLower(strings.TrimSpace(input.Type))
	if remarkType == "" && status != nil {
		remarkType = constants.RemarkTypeStatusChange
	}
	if !constants.IsRemarkType(remarkType) {
		return nil, ErrInvalidRemarkType
	}
	message := strings.TrimSpace(input.Message)
	if message == "" && status != nil {
		message = fmt.Sprintf("Status changed to %s", *status)
	}
	if message == "" {
		return nil, ErrRemarkMessageRequired
	}
	remark := &models.CartRemark{
		CartID:    cartID,
		Type:      remarkType,
		Message:   message,
		Status:    status,
		Agent:     agentOr(input.Agent, constants.RemarkAgentDefault),
		CreatedAt: s.now().UTC(),
	}
	if err := s.remarks.Create(remark); err != nil {
		return nil, err
	}
	return s.state(cartID, remark)
}

// AppendStatus 只追加状态记录，基线列保持不变；删除该记录即回退
func (s *RemarkService) AppendStatus(cartID, status, agent string) (*CartRemarkState, error) {
	return s.Append(cartID, AppendRemarkInput{
		Type:   constants.RemarkTypeStatusChange,
		Agent:  agentOr(agent, constants.RemarkAgentSystem),
		Status: &status,
	})
}

// RecordCustomerResponse 记录客户回复，类型为回复渠道
func (s *RemarkService) RecordCustomerResponse(cartID, medium, text string) (*CartRemarkState, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrCartNotFound
	}
	medium = strings.ToLower(strings.TrimSpace(medium))
	if medium == "" {
		medium = constants.RemarkTypeEmail
	}
	if !constants.IsContactMedium(medium) {
		return nil, ErrInvalidRemarkType
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrResponseRequired
	}
	remark := &models.CartRemark{
		CartID:    cartID,
		Type:      medium,
		Message:   fmt.Sprintf("Customer responded via %s", medium),
		Response:  &text,
		Agent:     constants.RemarkAgentSystem,
		CreatedAt: s.now().UTC(),
	}
	if err := s.remarks.Create(remark); err != nil {
		return nil, err
	}
	return s.state(cartID, remark)
}

// EditResponse 修改回复：追加一条带新回复的记录，原记录保持不变
func (s *RemarkService) EditResponse(cartID string, remarkID uint, text string) (*CartRemarkState, error) {
	cartID = strings.TrimSpace(cartID)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrResponseRequired
	}
	original, err := s.remarks.GetByCartAndID(cartID, remarkID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrRemarkNotFound
	}
	remark := &models.CartRemark{
		CartID:    cartID,
		Type:      original.Type,
		Message:   original.Message,
		Response:  &text,
		Agent:     original.Agent,
		CreatedAt: s.now().UTC(),
	}
	if err := s.remarks.Create(remark); err != nil {
		return nil, err
	}
	return s.state(cartID, remark)
}

// Delete 按 (cart_id, remark_id) 删除并返回剩余记录
func (s *RemarkService) Delete(cartID string, remarkID uint) (*CartRemarkState, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" || remarkID == 0 {
		return nil, ErrRemarkNotFound
	}
	deleted, err := s.remarks.DeleteByCartAndID(cartID, remarkID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrRemarkNotFound
	}
	return s.state(cartID, nil)
}

// ChangeField 变更状态或优先级：先追加记录，再更新基线列。
// 基线更新失败时有效状态仍以记录为准，只在结果中标记，不作为错误返回。
func (s *RemarkService) ChangeField(cartID, field, value, agent string) (*CartFieldChangeResult, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrCartNotFound
	}
	field, value, err := validateCartField(field, value)
	if err != nil {
		return nil, err
	}

	remark := &models.CartRemark{
		CartID:    cartID,
		Agent:     agentOr(agent, constants.RemarkAgentSystem),
		CreatedAt: s.now().UTC(),
	}
	if field == constants.CartFieldStatus {
		remark.Type = constants.RemarkTypeStatusChange
		remark.Message = fmt.Sprintf("Cart status changed to %s", value)
		remark.Status = &value
	} else {
		remark.Type = constants.RemarkTypeSystem
		remark.Message = fmt.Sprintf("Cart priority changed to %s", value)
		remark.Priority = &value
	}
	if err := s.remarks.Create(remark); err != nil {
		return nil, err
	}

	result := &CartFieldChangeResult{}
	cart, updateErr := s.checkouts.UpdateField(cartID, field, value)
	switch {
	case updateErr != nil:
		result.BaselineError = updateErr.Error()
	case cart == nil:
		result.BaselineError = ErrCartNotFound.Error()
	default:
		result.Cart = cart
		result.BaselineUpdated = true
	}
	if !result.BaselineUpdated {
		logger.Warnw("cart_baseline_update_failed",
			"cart_id", cartID,
			"field", field,
			"value", value,
			"remark_id", remark.ID,
			"error", result.BaselineError,
		)
	}

	state, err := s.state(cartID, remark)
	if err != nil {
		return nil, err
	}
	result.CartRemarkState = *state
	return result, nil
}

// Status 查询有效状态与基线状态
func (s *RemarkService) Status(cartID string) (*CartStatusView, error) {
	state, err := s.state(strings.TrimSpace(cartID), nil)
	if err != nil {
		return nil, err
	}
	return &CartStatusView{
		CartID:          state.CartID,
		BaselineStatus:  state.BaselineStatus,
		EffectiveStatus: state.EffectiveStatus,
	}, nil
}

func (s *RemarkService) state(cartID string, remark *models.CartRemark) (*CartRemarkState, error) {
	remarks, err := s.List(cartID)
	if err != nil {
		return nil, err
	}
	baseline := ""
	cart, err := s.checkouts.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		baseline = cart.Status
	}
	if baseline == "" {
		baseline = constants.CartStatusPending
	}
	return &CartRemarkState{
		CartID:          cartID,
		Remark:          remark,
		Remarks:         remarks,
		BaselineStatus:  baseline,
		EffectiveStatus: EffectiveStatus(baseline, remarks),
	}, nil
}

func validateCartField(field, value string) (string, string, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	value = strings.ToLower(strings.TrimSpace(value))
	switch field {
	case constants.CartFieldStatus:
		if !constants.IsCartStatus(value) {
			return "", "", ErrInvalidCartStatus
		}
	case constants.CartFieldPriority:
		if !constants.IsCartPriority(value) {
			return "", "", ErrInvalidCartPriority
		}
	default:
		return "", "", ErrInvalidCartField
	}
	return field, value, nil
}

func agentOr(agent, fallback string) string {
	if v := strings.TrimSpace(agent); v != "" {
		return v
	}
	return fallback
}
