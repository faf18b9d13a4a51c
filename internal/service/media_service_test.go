package service

import (
	"path/filepath"
	"testing"

	"github.com/papergen/papergen-backend/internal/config"
)

func TestResolvePath(t *testing.T) {
	s := NewMediaService(&config.Config{UploadDir: "/srv/uploads"})

	got, err := s.ResolvePath("/uploads/abc123.png")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if want := filepath.Join("/srv/uploads", "abc123.png"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolvePathRejectsBadInput(t *testing.T) {
	s := NewMediaService(&config.Config{UploadDir: "/srv/uploads"})

	bad := []string{
		"",
		"abc123.png",
		"/etc/passwd",
		"/uploads/",
		"/uploads/../secrets.env",
		"/uploads/../../etc/passwd",
	}
	for _, p := range bad {
		if got, err := s.ResolvePath(p); err == nil {
			t.Errorf("ResolvePath(%q) = %q, want error", p, got)
		}
	}
}
