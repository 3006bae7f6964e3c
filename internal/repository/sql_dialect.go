package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildLikeCondition 构建多列 LIKE 条件（postgres 使用 ILIKE），返回条件与参数。
func buildLikeCondition(db *gorm.DB, columns []string, keyword string) (string, []interface{}) {
	return buildLikeConditionByDialect(dbDialectName(db), columns, keyword)
}

func buildLikeConditionByDialect(dialect string, columns []string, keyword string) (string, []interface{}) {
	operator := likeOperatorByDialect(dialect)
	like := "%" + strings.TrimSpace(keyword) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		args = append(args, like)
	}
	return strings.Join(parts, " OR "), args
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}
