package client

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVerifyResourcesMissing(t *testing.T) {
	t.Setenv(defaultStaticDirectoryEnvVar, "no-such-directory")
	if err := VerifyResources(); err == nil {
		t.Errorf("VerifyResources passed with a missing static directory")
	}
}

func TestStaticHandler(t *testing.T) {
	t.Setenv(defaultStaticDirectoryEnvVar, "../static")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/robots.txt", nil)
	if !StaticHandler(w, r) {
		t.Fatalf("StaticHandler didn't claim /robots.txt")
	}
	if !strings.Contains(w.Body.String(), "User-agent") {
		t.Errorf("robots.txt content = %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/not-static", nil)
	if StaticHandler(w, r) {
		t.Errorf("StaticHandler claimed an unknown path")
	}
}
