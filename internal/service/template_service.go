package service

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
)

var nonDigitPattern = regexp.MustCompile(`[^\d]`)

// TemplateService 消息模板服务
type TemplateService struct {
	repo  repository.TemplateRepository
	carts *CartService
}

// NewTemplateService 创建模板服务
func NewTemplateService(repo repository.TemplateRepository, carts *CartService) *TemplateService {
	return &TemplateService{repo: repo, carts: carts}
}

// TemplateInput 创建/更新模板输入；更新时 nil 字段保持不变
type TemplateInput struct {
	Type       *string
	Name       *string
	Text       *string
	Category   *string
	IsStarred  *bool
	UsageCount *int
}

// RenderedTemplate 填充后的模板
type RenderedTemplate struct {
	TemplateID  uint   `json:"template_id"`
	CartID      string `json:"cart_id"`
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// List 模板列表
func (s *TemplateService) List(filter repository.TemplateListFilter) ([]models.Template, int64, error) {
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(filter)
}

// Get 获取模板
func (s *TemplateService) Get(id uint) (*models.Template, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// Create 创建模板，type/name/text/category 必填
func (s *TemplateService) Create(input TemplateInput) (*models.Template, error) {
	template := &models.Template{}
	applyTemplateInput(template, input)
	if template.Type == "" || template.Name == "" || template.Text == "" || template.Category == "" {
		return nil, ErrTemplateInvalid
	}
	if template.UsageCount < 0 {
		template.UsageCount = 0
	}
	if err := s.repo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Update 局部更新模板
func (s *TemplateService) Update(id uint, input TemplateInput) (*models.Template, error) {
	template, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyTemplateInput(template, input)
	if template.Type == "" || template.Name == "" || template.Text == "" || template.Category == "" {
		return nil, ErrTemplateInvalid
	}
	if err := s.repo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete 删除模板
func (s *TemplateService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	return nil
}

// Render 用弃单信息填充模板并累计使用次数
func (s *TemplateService) Render(id uint, cartID string) (*RenderedTemplate, error) {
	template, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}

	rendered := &RenderedTemplate{
		TemplateID: template.ID,
		CartID:     cart.ID,
		Text:       FillTemplate(template.Text, *cart),
	}
	if template.Type == constants.TemplateTypeWhatsApp {
		link, err := WhatsAppLink(cart.Customer.Phone, rendered.Text)
		if err != nil {
			return nil, err
		}
		rendered.WhatsAppURL = link
	}
	if err := s.repo.IncrementUsage(template.ID); err != nil {
		logger.Warnw("template_usage_increment_failed", "template_id", template.ID, "error", err)
	}
	return rendered, nil
}

// FillTemplate 替换 {name} 与 {product}
func FillTemplate(text string, cart Cart) string {
	names := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		names = append(names, item.Name)
	}
	return strings.NewReplacer(
		"{name}", cart.Customer.Name,
		"{product}", strings.Join(names, ", "),
	).Replace(text)
}

// WhatsAppLink 生成 wa.me 链接，号码只保留数字
func WhatsAppLink(phone, text string) (string, error) {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if digits == "" {
		return "", ErrPhoneMissing
	}
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20"), nil
}

func applyTemplateInput(template *models.Template, input TemplateInput) {
	if input.Type != nil {
		template.Type = strings.ToLower(strings.TrimSpace(*input.Type))
	}
	if input.Name != nil {
		template.Name = strings.TrimSpace(*input.Name)
	}
	if input.Text != nil {
		template.Text = strings.TrimSpace(*input.Text)
	}
	if input.Category != nil {
		template.Category = strings.TrimSpace(*input.Category)
	}
	if input.IsStarred != nil {
		template.IsStarred = *input.IsStarred
	}
	if input.UsageCount != nil {
		template.UsageCount = *input.UsageCount
	}
}
