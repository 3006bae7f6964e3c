package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON 对象列（客户信息等）
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		*j = JSON{}
		return nil
	}
	out := JSON{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*j = out
	return nil
}

// String 读取字符串字段，数字按原样格式化
func (j JSON) String(key string) string {
	if j == nil {
		return ""
	}
	switch v := j[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return formatNumber(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// RawJSON 原样保存的 JSON 文本（商品明细、上游原始报文）
type RawJSON []byte

// Value 实现 driver.Valuer 接口
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return string(r), nil
}

// Scan 实现 sql.Scanner 接口
func (r *RawJSON) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	*r = append((*r)[:0], raw...)
	return nil
}

// MarshalJSON 原样输出，空值输出 null
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(r)) == 0 || !json.Valid(r) {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON 原样保存
func (r *RawJSON) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return append([]byte(nil), v...), nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%v", v)
}
