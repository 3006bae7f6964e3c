package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":               LocaleZH,
		"en":             LocaleEN,
		"en-GB,en;q=0.9": LocaleEN,
		"zh-TW":          LocaleTW,
		"zh-Hant-HK":     LocaleTW,
		"zh,en;q=0.5":    LocaleZH,
		"fr-FR":          LocaleZH,
		"!!!":            LocaleZH,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", raw, want, got)
		}
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/carts?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "zh-TW")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query lang should win, got %s", got)
	}
	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context want default, got %s", got)
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleEN, "error.cart_not_found"); got != "Cart not found" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("xx", "error.cart_not_found"); got != "弃单不存在" {
		t.Fatalf("unknown locale should fall back to default, got %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should return key, got %s", got)
	}
}

func TestMessageTablesHaveSameKeys(t *testing.T) {
	base := messages[DefaultLocale]
	for locale, table := range messages {
		if len(table) != len(base) {
			t.Fatalf("locale %s has %d keys, want %d", locale, len(table), len(base))
		}
		for key := range base {
			if _, ok := table[key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
	}
}
