package models

import "time"

// CartRemark 弃单跟进记录（只追加）
type CartRemark struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    string    `gorm:"type:varchar(64);not null;index:idx_cart_remarks_cart_created,priority:1" json:"cart_id"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	Response  *string   `gorm:"type:text" json:"response"`
	Status    *string   `gorm:"type:varchar(32)" json:"status"`
	Priority  *string   `gorm:"type:varchar(32)" json:"priority"`
	Agent     string    `gorm:"type:varchar(100)" json:"agent"`
	CreatedAt time.Time `gorm:"index:idx_cart_remarks_cart_created,priority:2" json:"created_at"`
}

// TableName 指定表名
func (CartRemark) TableName() string {
	return "cart_remarks"
}

// HasStatus 是否携带状态变更
func (r CartRemark) HasStatus() bool {
	return r.Status != nil && *r.Status != ""
}

// HasResponse 是否记录了客户回复
func (r CartRemark) HasResponse() bool {
	return r.Response != nil && *r.Response != ""
}
