package shopify

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/logger"

	"github.com/go-resty/resty/v2"
)

const (
	defaultAPIVersion = "2025-04"
	maxPageSize       = 250
	maxErrorBodyBytes = 2048
)

var (
	// ErrNotConfigured 缺少店铺域名或访问令牌
	ErrNotConfigured = errors.New("shopify client not configured")
	// ErrUpstream Shopify 返回非 2xx
	ErrUpstream = errors.New("shopify upstream error")
)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// UpstreamError 上游错误，保留状态码与响应体
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error 实现 error 接口
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("shopify responded %d: %s", e.StatusCode, e.Body)
}

// Is 匹配 ErrUpstream
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Config 客户端配置
type Config struct {
	Shop        string
	AccessToken string
	APIVersion  string
	PageSize    int
	Timeout     time.Duration
	BaseURL     string // 测试或代理时覆盖 https://{shop}
}

// ListParams 弃单查询参数；PageURL 非空时直接请求游标地址
type ListParams struct {
	CreatedAtMin time.Time
	CreatedAtMax time.Time
	PageURL      string
}

// CheckoutPage 单页结果
type CheckoutPage struct {
	Checkouts   []Checkout
	NextPageURL string
}

// Client Shopify Admin REST 客户端
type Client struct {
	http       *resty.Client
	apiVersion string
	pageSize   int
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	shop := strings.TrimSpace(cfg.Shop)
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" || (shop == "" && strings.TrimSpace(cfg.BaseURL) == "") {
		return nil, ErrNotConfigured
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://" + shop
	}
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Shopify-Access-Token", token).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		http:       httpClient,
		apiVersion: apiVersion,
		pageSize:   pageSize,
	}, nil
}

// PageSize 单页最大条数
func (c *Client) PageSize() int {
	return c.pageSize
}

// ListAbandonedCheckouts 拉取一页弃单
func (c *Client) ListAbandonedCheckouts(ctx context.Context, params ListParams) (*CheckoutPage, error) {
	var out checkoutsResponse
	// 代理可能改写 Content-Type，统一按 JSON 解码
	req := c.http.R().SetContext(ctx).SetResult(&out).ForceContentType("application/json")

	target := strings.TrimSpace(params.PageURL)
	if target == "" {
		target = fmt.Sprintf("/admin/api/%s/checkouts.json", c.apiVersion)
		req.SetQueryParam("status", "abandoned")
		req.SetQueryParam("limit", strconv.Itoa(c.pageSize))
		if !params.CreatedAtMin.IsZero() {
			req.SetQueryParam("created_at_min", params.CreatedAtMin.UTC().Format(time.RFC3339))
		}
		if !params.CreatedAtMax.IsZero() {
			req.SetQueryParam("created_at_max", params.CreatedAtMax.UTC().Format(time.RFC3339))
		}
	}

	resp, err := req.Get(target)
	if err != nil {
		return nil, fmt.Errorf("shopify list checkouts request failed: %w", err)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		logger.Warnw("shopify_list_checkouts_failed", "status", resp.StatusCode(), "url", target)
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: body}
	}

	return &CheckoutPage{
		Checkouts:   out.Checkouts,
		NextPageURL: ParseNextLink(resp.Header().Get("Link")),
	}, nil
}

// ListAllAbandonedCheckouts 顺序翻页直到没有下一页
func (c *Client) ListAllAbandonedCheckouts(ctx context.Context, createdAtMin, createdAtMax time.Time) ([]Checkout, error) {
	var all []Checkout
	params := ListParams{CreatedAtMin: createdAtMin, CreatedAtMax: createdAtMax}
	for {
		page, err := c.ListAbandonedCheckouts(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Checkouts...)
		if page.NextPageURL == "" {
			return all, nil
		}
		params = ListParams{PageURL: page.NextPageURL}
	}
}

// ParseNextLink 从 Link 响应头中提取 rel="next" 地址
func ParseNextLink(header string) string {
	match := nextLinkPattern.FindStringSubmatch(header)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}
