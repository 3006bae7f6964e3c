package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set(requestIDKey, "req-1")

	Error(c, CodeNotFound, "missing")

	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if rec.Code != 200 || body.StatusCode != CodeNotFound || body.Msg != "missing" {
		t.Fatalf("unexpected response: %d %+v", rec.Code, body)
	}
	if body.Data[requestIDKey] != "req-1" {
		t.Fatalf("request id not attached: %+v", body.Data)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	if p.TotalPage != 3 || p.Total != 21 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if NewPagination(1, 0, 5).TotalPage != 0 {
		t.Fatalf("zero page size should give zero pages")
	}
}
