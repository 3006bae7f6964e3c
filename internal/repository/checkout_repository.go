package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkoutSyncColumns 同步时覆盖的列，status/priority 由人工维护不参与覆盖
var checkoutSyncColumns = []string{
	"created_at",
	"updated_at",
	"customer",
	"email",
	"phone",
	"cart_value",
	"items",
	"raw",
	"synced_at",
}

// CheckoutRepository 弃单数据访问接口
type CheckoutRepository interface {
	MaxCreatedAt() (*time.Time, error)
	Upsert(row *models.AbandonedCheckout) error
	UpsertBatch(rows []models.AbandonedCheckout) error
	Count() (int64, error)
	ListByCreatedRange(filter CheckoutRangeFilter) ([]models.AbandonedCheckout, error)
	ListRecent(limit int) ([]models.AbandonedCheckout, error)
	GetByID(id string) (*models.AbandonedCheckout, error)
	UpdateField(id, field, value string) (*models.AbandonedCheckout, error)
	WithTx(tx *gorm.DB) *GormCheckoutRepository
}

// GormCheckoutRepository GORM 实现
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository 创建弃单仓库
func NewCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCheckoutRepository) WithTx(tx *gorm.DB) *GormCheckoutRepository {
	if tx == nil {
		return r
	}
	return &GormCheckoutRepository{db: tx}
}

// MaxCreatedAt 获取最新一条弃单的创建时间，空表返回 nil
func (r *GormCheckoutRepository) MaxCreatedAt() (*time.Time, error) {
	var rows []models.AbandonedCheckout
	if err := r.db.Model(&models.AbandonedCheckout{}).
		Select("id", "created_at").
		Order("created_at desc").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].CreatedAt.IsZero() {
		return nil, nil
	}
	latest := rows[0].CreatedAt
	return &latest, nil
}

// Upsert 按 id 插入或覆盖
func (r *GormCheckoutRepository) Upsert(row *models.AbandonedCheckout) error {
	if row == nil {
		return nil
	}
	return r.db.Clauses(upsertClause()).Create(row).Error
}

// UpsertBatch 批量按 id 插入或覆盖，同批重复 id 以后出现者为准
func (r *GormCheckoutRepository) UpsertBatch(rows []models.AbandonedCheckout) error {
	rows = dedupeCheckouts(rows)
	if len(rows) == 0 {
		return nil
	}
	return r.db.Clauses(upsertClause()).Create(&rows).Error
}

// Count 弃单总数
func (r *GormCheckoutRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.AbandonedCheckout{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListByCreatedRange 按创建时间窗口倒序查询（闭区间）
func (r *GormCheckoutRepository) ListByCreatedRange(filter CheckoutRangeFilter) ([]models.AbandonedCheckout, error) {
	query := r.db.Model(&models.AbandonedCheckout{})
	if !filter.Start.IsZero() {
		query = query.Where("created_at >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("created_at <= ?", filter.End)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []models.AbandonedCheckout
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecent 最近的弃单
func (r *GormCheckoutRepository) ListRecent(limit int) ([]models.AbandonedCheckout, error) {
	return r.ListByCreatedRange(CheckoutRangeFilter{Limit: limit})
}

// GetByID 根据 ID 获取弃单
func (r *GormCheckoutRepository) GetByID(id string) (*models.AbandonedCheckout, error) {
	var row models.AbandonedCheckout
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpdateField 更新基线字段（仅 status/priority），记录不存在返回 nil
func (r *GormCheckoutRepository) UpdateField(id, field, value string) (*models.AbandonedCheckout, error) {
	switch field {
	case constants.CartFieldStatus, constants.CartFieldPriority:
	default:
		return nil, fmt.Errorf("checkout field %q is not updatable", field)
	}
	result := r.db.Model(&models.AbandonedCheckout{}).Where("id = ?", id).Update(field, value)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

func upsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(checkoutSyncColumns),
	}
}

func dedupeCheckouts(rows []models.AbandonedCheckout) []models.AbandonedCheckout {
	if len(rows) < 2 {
		return rows
	}
	index := make(map[string]int, len(rows))
	out := make([]models.AbandonedCheckout, 0, len(rows))
	for _, row := range rows {
		if pos, ok := index[row.ID]; ok {
			out[pos] = row
			continue
		}
		index[row.ID] = len(out)
		out = append(out, row)
	}
	return out
}
