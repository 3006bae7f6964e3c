package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"
)

// CartCustomer 弃单客户
type CartCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CartItem 弃单商品
type CartItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
}

// Cart 统一后的弃单实体，线上与库内两种来源归一为同一结构
type Cart struct {
	ID                  string              `json:"id"`
	Source              string              `json:"source"`
	Customer            CartCustomer        `json:"customer"`
	Items               []CartItem          `json:"items"`
	CartValue           models.Money        `json:"cart_value"`
	AbandonedAt         time.Time           `json:"abandoned_at"`
	LastContacted       time.Time           `json:"last_contacted"`
	Status              string              `json:"status"`
	Priority            string              `json:"priority"`
	EffectiveStatus     string              `json:"effective_status"`
	HoursSinceAbandoned int                 `json:"hours_since_abandoned"`
	Remarks             []models.CartRemark `json:"remarks"`
}

// WithRemarks 挂载跟进记录并重新推导有效状态
func (c Cart) WithRemarks(remarks []models.CartRemark) Cart {
	if remarks == nil {
		remarks = []models.CartRemark{}
	}
	c.Remarks = remarks
	c.EffectiveStatus = EffectiveStatus(c.Status, remarks)
	return c
}

// CheckoutRecord 待归一的原始记录，Kind 由调用方显式指定
type CheckoutRecord struct {
	Kind   string
	Live   *shopify.Checkout
	Stored *models.AbandonedCheckout
}

// LiveRecord 包装 Shopify 实时记录
func LiveRecord(checkout shopify.Checkout) CheckoutRecord {
	return CheckoutRecord{Kind: constants.CartSourceLive, Live: &checkout}
}

// StoredRecord 包装库内记录
func StoredRecord(row models.AbandonedCheckout) CheckoutRecord {
	return CheckoutRecord{Kind: constants.CartSourceStored, Stored: &row}
}

// NormalizeCheckout 归一化弃单；缺失字段降级为默认值，从不返回错误
func NormalizeCheckout(record CheckoutRecord, now time.Time) Cart {
	var cart Cart
	switch {
	case record.Kind == constants.CartSourceLive && record.Live != nil:
		cart = normalizeLive(*record.Live, now)
	case record.Kind == constants.CartSourceStored && record.Stored != nil:
		cart = normalizeStored(*record.Stored, now)
	default:
		cart = Cart{
			Source:        record.Kind,
			Customer:      CartCustomer{Name: constants.UnknownCustomerName},
			AbandonedAt:   now,
			LastContacted: now,
		}
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	if cart.Status == "" {
		cart.Status = constants.CartStatusPending
	}
	if cart.Priority == "" {
		cart.Priority = constants.CartPriorityMedium
	}
	cart.HoursSinceAbandoned = HoursSince(cart.AbandonedAt, now)
	return cart.WithRemarks(nil)
}

func normalizeLive(checkout shopify.Checkout, now time.Time) Cart {
	id := checkout.ID.String()
	var customer shopify.Customer
	if checkout.Customer != nil {
		customer = *checkout.Customer
	}
	email := firstNonEmpty(customer.Email, checkout.Email)
	phone := firstNonEmpty(customer.Phone, checkout.Phone)

	items := make([]CartItem, 0, len(checkout.LineItems))
	for _, line := range checkout.LineItems {
		items = append(items, CartItem{
			ID:       firstNonEmpty(line.ID.String(), line.Key, line.VariantID.String()),
			Name:     firstNonEmpty(line.Title, constants.UnnamedItemName),
			Quantity: line.Quantity,
			Price:    models.ParseMoney(line.Price),
		})
	}

	return Cart{
		ID:     id,
		Source: constants.CartSourceLive,
		Customer: CartCustomer{
			ID:    firstNonEmpty(customer.ID.String(), id),
			Name:  ResolveCustomerName(customer.Name, customer.FirstName, customer.LastName, email, phone),
			Email: email,
			Phone: phone,
		},
		Items:         items,
		CartValue:     models.ParseMoney(checkout.SubtotalPrice),
		AbandonedAt:   timeOr(checkout.CreatedAt, now),
		LastContacted: timeOr(checkout.UpdatedAt, now),
	}
}

func normalizeStored(row models.AbandonedCheckout, now time.Time) Cart {
	email := firstNonEmpty(row.Customer.String("email"), row.Email)
	phone := firstNonEmpty(row.Customer.String("phone"), row.Phone)
	return Cart{
		ID:     row.ID,
		Source: constants.CartSourceStored,
		Customer: CartCustomer{
			ID: firstNonEmpty(row.Customer.String("id"), row.ID),
			Name: ResolveCustomerName(
				row.Customer.String("name"),
				row.Customer.String("first_name"),
				row.Customer.String("last_name"),
				email,
				phone,
			),
			Email: email,
			Phone: phone,
		},
		Items:         ParseStoredItems(row.Items),
		CartValue:     row.CartValue,
		AbandonedAt:   timeOr(row.CreatedAt, now),
		LastContacted: timeOr(row.UpdatedAt, now),
		Status:        strings.TrimSpace(row.Status),
		Priority:      strings.TrimSpace(row.Priority),
	}
}

// ResolveCustomerName 姓名回退链：name → first+last → email → phone → Unknown
func ResolveCustomerName(name, firstName, lastName, email, phone string) string {
	if v := strings.TrimSpace(name); v != "" {
		return v
	}
	if full := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)); full != "" {
		return full
	}
	if v := strings.TrimSpace(email); v != "" {
		return v
	}
	if v := strings.TrimSpace(phone); v != "" {
		return v
	}
	return constants.UnknownCustomerName
}

// ParseStoredItems 解析库内商品明细，支持数组或被序列化成字符串的数组；解析失败返回空列表
func ParseStoredItems(raw models.RawJSON) []CartItem {
	data := bytes.TrimSpace(raw)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return []CartItem{}
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 || data[0] != '[' {
		return []CartItem{}
	}

	var entries []map[string]interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&entries); err != nil {
		return []CartItem{}
	}

	items := make([]CartItem, 0, len(entries))
	for _, entry := range entries {
		fields := models.JSON(entry)
		items = append(items, CartItem{
			ID:       firstNonEmpty(fields.String("id"), fields.String("key"), fields.String("variant_id")),
			Name:     firstNonEmpty(fields.String("name"), fields.String("title"), constants.UnnamedItemName),
			Quantity: parseQuantity(entry["quantity"]),
			Price:    models.ParseMoney(fields.String("price")),
		})
	}
	return items
}

// HoursSince 距今小时数（向下取整）
func HoursSince(t time.Time, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(math.Floor(now.Sub(t).Hours()))
}

func parseQuantity(value interface{}) int {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(v)
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err == nil {
			return n
		}
	}
	return 0
}

func timeOr(t time.Time, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
