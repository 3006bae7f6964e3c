package repository

import (
	"errors"
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/models"

	"gorm.io/gorm"
)

// TemplateRepository 消息模板数据访问接口
type TemplateRepository interface {
	List(filter TemplateListFilter) ([]models.Template, int64, error)
	GetByID(id uint) (*models.Template, error)
	Create(template *models.Template) error
	Update(template *models.Template) error
	Delete(id uint) (bool, error)
	IncrementUsage(id uint) error
}

// GormTemplateRepository GORM 实现
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓库
func NewTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// List 模板列表，按 id 正序
func (r *GormTemplateRepository) List(filter TemplateListFilter) ([]models.Template, int64, error) {
	query := r.db.Model(&models.Template{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := buildLikeCondition(r.db, []string{"name", "text"}, search)
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []models.Template
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id asc").Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// GetByID 根据 ID 获取模板
func (r *GormTemplateRepository) GetByID(id uint) (*models.Template, error) {
	var template models.Template
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Create 创建模板
func (r *GormTemplateRepository) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *GormTemplateRepository) Update(template *models.Template) error {
	return r.db.Save(template).Error
}

// Delete 删除模板，返回是否删除了记录
func (r *GormTemplateRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Template{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementUsage 使用次数 +1
func (r *GormTemplateRepository) IncrementUsage(id uint) error {
	return r.db.Model(&models.Template{}).Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}
