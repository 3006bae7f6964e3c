package models

import (
	"github.com/Markwebsolutions/abandoncart/internal/logger"

	"gorm.io/gorm"
)

// DefaultTemplates 初始 WhatsApp 跟进模板
func DefaultTemplates() []Template {
	return []Template{
		{
			Type:     "whatsapp",
			Name:     "Gentle reminder",
			Text:     "Hi {name}, you left {product} in your cart. Need any help completing your order?",
			Category: "reminder",
		},
		{
			Type:     "whatsapp",
			Name:     "Still interested",
			Text:     "Hi {name}, {product} is still waiting for you. Reply here if you have any questions.",
			Category: "follow-up",
		},
	}
}

// InitDefaultTemplates 模板表为空时写入默认模板
func InitDefaultTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Template{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	templates := DefaultTemplates()
	if err := db.Create(&templates).Error; err != nil {
		return err
	}
	logger.Infow("default_templates_created", "count", len(templates))
	return nil
}
