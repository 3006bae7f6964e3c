package repository

import (
	"errors"

	"github.com/Markwebsolutions/abandoncart/internal/models"

	"gorm.io/gorm"
)

// RemarkRepository 跟进记录数据访问接口
type RemarkRepository interface {
	ListByCart(cartID string) ([]models.CartRemark, error)
	ListByCarts(cartIDs []string) (map[string][]models.CartRemark, error)
	GetByCartAndID(cartID string, id uint) (*models.CartRemark, error)
	Create(remark *models.CartRemark) error
	DeleteByCartAndID(cartID string, id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormRemarkRepository
}

// GormRemarkRepository GORM 实现
type GormRemarkRepository struct {
	db *gorm.DB
}

// NewRemarkRepository 创建跟进记录仓库
func NewRemarkRepository(db *gorm.DB) *GormRemarkRepository {
	return &GormRemarkRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRemarkRepository) WithTx(tx *gorm.DB) *GormRemarkRepository {
	if tx == nil {
		return r
	}
	return &GormRemarkRepository{db: tx}
}

// ListByCart 按创建时间正序获取某个弃单的全部记录
func (r *GormRemarkRepository) ListByCart(cartID string) ([]models.CartRemark, error) {
	var remarks []models.CartRemark
	if err := r.db.Where("cart_id = ?", cartID).Order("created_at asc, id asc").Find(&remarks).Error; err != nil {
		return nil, err
	}
	return remarks, nil
}

// ListByCarts 批量获取记录，按 cart_id 分组
func (r *GormRemarkRepository) ListByCarts(cartIDs []string) (map[string][]models.CartRemark, error) {
	grouped := make(map[string][]models.CartRemark, len(cartIDs))
	if len(cartIDs) == 0 {
		return grouped, nil
	}
	var remarks []models.CartRemark
	if err := r.db.Where("cart_id IN ?", cartIDs).Order("created_at asc, id asc").Find(&remarks).Error; err != nil {
		return nil, err
	}
	for _, remark := range remarks {
		grouped[remark.CartID] = append(grouped[remark.CartID], remark)
	}
	return grouped, nil
}

// GetByCartAndID 获取单条记录，不存在返回 nil
func (r *GormRemarkRepository) GetByCartAndID(cartID string, id uint) (*models.CartRemark, error) {
	var remark models.CartRemark
	if err := r.db.Where("cart_id = ? AND id = ?", cartID, id).First(&remark).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remark, nil
}

// Create 追加记录
func (r *GormRemarkRepository) Create(remark *models.CartRemark) error {
	return r.db.Create(remark).Error
}

// DeleteByCartAndID 按 (cart_id, id) 删除，返回是否删除了记录
func (r *GormRemarkRepository) DeleteByCartAndID(cartID string, id uint) (bool, error) {
	result := r.db.Where("cart_id = ? AND id = ?", cartID, id).Delete(&models.CartRemark{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
