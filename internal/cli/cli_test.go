package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"head", []string{"head"}},
		{"head,first_out", []string{"head", "first_out"}},
		{" head , first_out ", []string{"head", "first_out"}},
		{"head,,first_out,", []string{"head", "first_out"}},
	}
	for _, tt := range tests {
		if got := parseAttributes(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseAttributes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"order", "convert", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestOrderCommandRequiresThreeArgs(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.orderCommand()

	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("two args should be rejected")
	}
	if err := cmd.Args(cmd, []string{"a", "b", "c", "d"}); err == nil {
		t.Error("four args should be rejected")
	}
	if err := cmd.Args(cmd, []string{"a", "b", "c"}); err != nil {
		t.Errorf("three args rejected: %v", err)
	}
}

func TestCacheDir(t *testing.T) {
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if want := filepath.Join(customCache, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}
