package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	dir, err := New("/tmp/test-cardscan")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if dir.Path() != "/tmp/test-cardscan" {
		t.Errorf("Path() = %s", dir.Path())
	}
	if got := dir.ConfigPath(); got != "/tmp/test-cardscan/config.yaml" {
		t.Errorf("ConfigPath() = %s", got)
	}
	if got := dir.EnvPath(); got != "/tmp/test-cardscan/.env" {
		t.Errorf("EnvPath() = %s", got)
	}

	t.Run("empty path uses user home", func(t *testing.T) {
		userHome := t.TempDir()
		t.Setenv("HOME", userHome)

		dir, err := New("")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if want := filepath.Join(userHome, DefaultDirName); dir.Path() != want {
			t.Errorf("Path() = %s, want %s", dir.Path(), want)
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	dir, _ := New(filepath.Join(t.TempDir(), "nested", "cardscan"))

	for i := 0; i < 2; i++ {
		if err := dir.EnsureExists(); err != nil {
			t.Fatalf("EnsureExists() #%d error = %v", i+1, err)
		}
	}
	if fi, err := os.Stat(dir.Path()); err != nil || !fi.IsDir() {
		t.Errorf("expected directory at %s", dir.Path())
	}
}

func TestDir_ConfigFile(t *testing.T) {
	write := func(t *testing.T, path string) {
		t.Helper()
		if err := os.WriteFile(path, []byte("openai: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("nothing present", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir, _ := New(t.TempDir())
		if got := dir.ConfigFile(""); got != "" {
			t.Errorf("ConfigFile() = %q, want empty", got)
		}
	})

	t.Run("home config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir, _ := New(t.TempDir())
		write(t, dir.ConfigPath())
		if got := dir.ConfigFile(""); got != dir.ConfigPath() {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("working directory beats home", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir, _ := New(t.TempDir())
		write(t, dir.ConfigPath())
		write(t, ConfigFileName)
		if got := dir.ConfigFile(""); got != ConfigFileName {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("explicit beats all", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir, _ := New(t.TempDir())
		write(t, ConfigFileName)
		if got := dir.ConfigFile("/etc/cardscan.yaml"); got != "/etc/cardscan.yaml" {
			t.Errorf("ConfigFile() = %q", got)
		}
	})
}

func TestDir_EnvFiles(t *testing.T) {
	dir, _ := New("/tmp/test-cardscan")
	got := dir.EnvFiles()
	if len(got) != 2 || got[0] != ".env" || got[1] != "/tmp/test-cardscan/.env" {
		t.Errorf("EnvFiles() = %v", got)
	}
}
