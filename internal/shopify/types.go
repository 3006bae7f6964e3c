package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexibleID Shopify 中既可能是数字也可能是字符串的 id
type FlexibleID string

// UnmarshalJSON 兼容数字与字符串
func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(b), err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// String 返回 id 字符串
func (id FlexibleID) String() string {
	return string(id)
}

// Customer 弃单关联的客户
type Customer struct {
	ID        FlexibleID `json:"id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Name      string     `json:"name"`
}

// LineItem 弃单商品行
type LineItem struct {
	ID        FlexibleID `json:"id"`
	Key       string     `json:"key"`
	VariantID FlexibleID `json:"variant_id"`
	ProductID FlexibleID `json:"product_id"`
	Title     string     `json:"title"`
	Quantity  int        `json:"quantity"`
	Price     string     `json:"price"`
}

// Checkout Shopify abandoned checkout
type Checkout struct {
	ID                   FlexibleID `json:"id"`
	Token                string     `json:"token"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	Currency             string     `json:"currency"`
	SubtotalPrice        string     `json:"subtotal_price"`
	TotalPrice           string     `json:"total_price"`
	AbandonedCheckoutURL string     `json:"abandoned_checkout_url"`
	Customer             *Customer  `json:"customer"`
	LineItems            []LineItem `json:"line_items"`

	// CustomerData 客户对象原样解析结果，落库时整体保存
	CustomerData map[string]interface{} `json:"-"`
	// LineItemsJSON 商品行原始 JSON
	LineItemsJSON json.RawMessage `json:"-"`
	// Raw 完整原始报文
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON 解析同时保留原始报文
func (c *Checkout) UnmarshalJSON(b []byte) error {
	type plain Checkout
	var decoded plain
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	var extra struct {
		Customer  map[string]interface{} `json:"customer"`
		LineItems json.RawMessage        `json:"line_items"`
	}
	if err := json.Unmarshal(b, &extra); err != nil {
		return err
	}
	*c = Checkout(decoded)
	c.CustomerData = extra.Customer
	if len(extra.LineItems) > 0 && string(extra.LineItems) != "null" {
		c.LineItemsJSON = append(json.RawMessage(nil), extra.LineItems...)
	}
	c.Raw = append(json.RawMessage(nil), b...)
	return nil
}

type checkoutsResponse struct {
	Checkouts []Checkout `json:"checkouts"`
}
