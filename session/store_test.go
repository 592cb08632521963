package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set on response", name)
	return nil
}

func TestCookieStoreWriteAttributes(t *testing.T) {
	store := NewCookieStore(CookieConfig{Secure: true})

	rec := httptest.NewRecorder()
	store.Write(rec, "tok-123")

	c := responseCookie(t, rec, DefaultCookieName)
	if c.Value != "tok-123" {
		t.Fatalf("value = %q, want tok-123", c.Value)
	}
	if !c.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
	if !c.Secure {
		t.Fatal("secure flag must follow configuration")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Fatalf("SameSite = %v, want strict", c.SameSite)
	}
	if c.Path != "/" {
		t.Fatalf("path = %q, want /", c.Path)
	}
	if want := int(DefaultMaxAge / time.Second); c.MaxAge != want {
		t.Fatalf("max-age = %d, want %d", c.MaxAge, want)
	}
}

func TestCookieStoreInsecureOutsideProduction(t *testing.T) {
	store := NewCookieStore(CookieConfig{Secure: false})

	rec := httptest.NewRecorder()
	store.Write(rec, "tok")

	if responseCookie(t, rec, DefaultCookieName).Secure {
		t.Fatal("secure flag must be off outside production-like environments")
	}
}

func TestCookieStoreReadAbsent(t *testing.T) {
	store := NewCookieStore(CookieConfig{})

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if _, ok := store.Read(r); ok {
		t.Fatal("expected absent token")
	}
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(CookieConfig{})

	rec := httptest.NewRecorder()
	store.Write(rec, "tok-456")

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(responseCookie(t, rec, DefaultCookieName))

	got, ok := store.Read(r)
	if !ok || got != "tok-456" {
		t.Fatalf("Read = %q, %v; want tok-456, true", got, ok)
	}
}

func TestCookieStoreClear(t *testing.T) {
	store := NewCookieStore(CookieConfig{})

	rec := httptest.NewRecorder()
	store.Clear(rec)

	c := responseCookie(t, rec, DefaultCookieName)
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("clear must expire the cookie, got value=%q max-age=%d", c.Value, c.MaxAge)
	}
	if c.Path != "/" {
		t.Fatalf("clear path = %q, want /", c.Path)
	}
}
