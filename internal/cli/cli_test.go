package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	return &CLI{
		Logger: newLogger(io.Discard, log.InfoLevel),
		Config: &Config{CacheDir: t.TempDir()},
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	c := &CLI{Config: &Config{}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := &CLI{Config: &Config{}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := &CLI{Config: &Config{CacheDir: "/var/cache/diagrams"}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/var/cache/diagrams" {
		t.Errorf("cacheDir() = %q, want configured directory", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input ext", "", "scenes/shop.json", "scenes/shop"},
		{"output with format ext", "diagram.svg", "shop.json", "diagram"},
		{"output with unknown ext kept", "diagram.out", "shop.json", "diagram.out"},
		{"bare output kept", "diagram", "shop.json", "diagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"arrange", "overlaps", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

const testScene = `{
  "name": "shop",
  "canvas": {"width": 800, "height": 600},
  "nodes": [
    {"id": "web", "name": "Web"},
    {"id": "api", "name": "API"},
    {"id": "db", "name": "DB"}
  ],
  "connectors": [
    {"from": "web", "to": "api"},
    {"from": "api", "to": "db"}
  ]
}`

func TestArrangeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "shop.json")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	c := newTestCLI(t)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"arrange", scenePath, "-f", "svg,json", "-o", filepath.Join(dir, "out.svg")})

	if err := root.Execute(); err != nil {
		t.Fatalf("arrange failed: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "out.svg"))
	if err != nil {
		t.Fatalf("read svg output: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output should contain an <svg element")
	}

	if _, err := os.Stat(filepath.Join(dir, "out.json")); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestArrangeInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "shop.json")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	root := newTestCLI(t).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"arrange", scenePath, "-f", "bmp"})

	if err := root.Execute(); err == nil {
		t.Error("arrange should reject an unsupported format")
	}
}

func TestOverlapsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "shop.json")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	c := newTestCLI(t)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	// Arrange first so node positions are spread out
	root.SetArgs([]string{"arrange", scenePath, "-f", "json", "-o", filepath.Join(dir, "out.json")})
	if err := root.Execute(); err != nil {
		t.Fatalf("arrange failed: %v", err)
	}

	root.SetArgs([]string{"overlaps", filepath.Join(dir, "out.json"), "--strict"})
	if err := root.Execute(); err != nil {
		t.Errorf("overlaps on an arranged scene should pass, got %v", err)
	}
}
