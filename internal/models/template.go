package models

import "time"

// Template 消息模板
type Template struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Type       string    `gorm:"type:varchar(32);not null;index" json:"type"` // whatsapp / email / sms
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Text       string    `gorm:"type:text;not null" json:"text"` // 支持 {name} {product}
	Category   string    `gorm:"type:varchar(100);not null" json:"category"`
	IsStarred  bool      `gorm:"not null;default:false" json:"is_starred"`
	UsageCount int       `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}
