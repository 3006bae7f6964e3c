package models

import "time"

// AbandonedCheckout 弃单镜像表（按 Shopify checkout id 去重）
type AbandonedCheckout struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time `gorm:"index;autoCreateTime:false" json:"created_at"` // Shopify 创建时间
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`      // Shopify 更新时间
	Customer  JSON      `gorm:"type:json" json:"customer"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(64)" json:"phone"`
	CartValue Money     `gorm:"type:decimal(20,2);not null" json:"cart_value"`
	Items     RawJSON   `gorm:"type:text" json:"items"`
	Raw       RawJSON   `gorm:"type:text" json:"raw,omitempty"`
	Status    string    `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	Priority  string    `gorm:"type:varchar(32);not null;default:'medium'" json:"priority"`
	SyncedAt  time.Time `json:"synced_at"` // 本地写入时间
}

// TableName 指定表名
func (AbandonedCheckout) TableName() string {
	return "abandoned_checkouts"
}
