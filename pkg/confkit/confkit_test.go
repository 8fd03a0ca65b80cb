package confkit_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptoassist-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFKIT_TEST_DIR", "nested")

	tests := []struct {
		name     string
		base     string
		file     string
		expected string
	}{
		{name: "absolute path", base: "/base/dir", file: "/abs/file.yaml", expected: "/abs/file.yaml"},
		{name: "relative path", base: "/base/dir", file: "config/file.yaml", expected: "/base/dir/config/file.yaml"},
		{name: "relative path with env var", base: "/base/dir", file: "${CONFKIT_TEST_DIR}/file.yaml", expected: "/base/dir/nested/file.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confkit.ResolvePath(tt.base, tt.file); got != tt.expected {
				t.Errorf("ResolvePath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBaseDir(t *testing.T) {
	if got := confkit.BaseDir("/etc/cryptoassist/dashboard.yaml"); got != "/etc/cryptoassist" {
		t.Errorf("BaseDir() = %v", got)
	}
	if got := confkit.BaseDir("etc/dashboard.yaml"); got != "etc" {
		t.Errorf("BaseDir() = %v", got)
	}
}

func TestSection_Hydrate(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		section := &confkit.Section[string]{}
		err := section.Hydrate("/base", func(string) (*string, error) {
			t.Error("loader should not be called for empty file")
			return nil, nil
		})
		require.NoError(t, err)
		require.False(t, section.Configured())
	})

	t.Run("successful hydration", func(t *testing.T) {
		section := &confkit.Section[string]{File: "market.yaml"}
		value := "loaded"
		err := section.Hydrate("/base", func(path string) (*string, error) {
			require.Equal(t, "/base/market.yaml", path)
			return &value, nil
		})
		require.NoError(t, err)
		require.True(t, section.Configured())
		require.Equal(t, "/base/market.yaml", section.File)
		require.Equal(t, "loaded", *section.Value)
	})

	t.Run("loader error", func(t *testing.T) {
		section := &confkit.Section[string]{File: "broken.yaml"}
		err := section.Hydrate("/base", func(string) (*string, error) {
			return nil, errors.New("boom")
		})
		require.EqualError(t, err, "boom")
		require.Equal(t, "broken.yaml", section.File)
	})
}

func TestCredential(t *testing.T) {
	t.Run("configured value wins", func(t *testing.T) {
		t.Setenv("CONFKIT_TEST_KEY", "from-env")
		key, err := confkit.Credential("coinmarketcap", "inline", "CONFKIT_TEST_KEY")
		require.NoError(t, err)
		require.Equal(t, "inline", key)
	})

	t.Run("configured value expands env", func(t *testing.T) {
		t.Setenv("CONFKIT_TEST_KEY", "expanded")
		key, err := confkit.Credential("coinmarketcap", "${CONFKIT_TEST_KEY}", "")
		require.NoError(t, err)
		require.Equal(t, "expanded", key)
	})

	t.Run("falls back to env var", func(t *testing.T) {
		t.Setenv("CONFKIT_TEST_KEY", " from-env ")
		key, err := confkit.Credential("cryptopanic", "", "CONFKIT_TEST_KEY")
		require.NoError(t, err)
		require.Equal(t, "from-env", key)
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Setenv("CONFKIT_TEST_KEY", "")
		_, err := confkit.Credential("cryptopanic", "  ", "CONFKIT_TEST_KEY")
		var credErr *confkit.CredentialError
		require.ErrorAs(t, err, &credErr)
		require.Equal(t, "cryptopanic", credErr.Provider)
		require.Contains(t, err.Error(), "CONFKIT_TEST_KEY")
	})
}

func TestProjectPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o600))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	p, err := confkit.ProjectPath("etc/dashboard.yaml")
	require.NoError(t, err)
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	resolvedP, err := filepath.EvalSymlinks(filepath.Dir(filepath.Dir(p)))
	require.NoError(t, err)
	require.Equal(t, resolvedDir, resolvedP)
	require.Equal(t, "dashboard.yaml", filepath.Base(p))
}

func TestLocateFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "etc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "etc", "app.yaml"), []byte("a: 1\n"), 0o600))
	sub := filepath.Join(dir, "cmd", "tool")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "local.yaml"), []byte("b: 2\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := filepath.EvalSymlinks(confkit.LocateFile("etc/app.yaml"))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, "etc", "app.yaml"))
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.Equal(t, "local.yaml", confkit.LocateFile("local.yaml"))
	require.Equal(t, "etc/missing.yaml", confkit.LocateFile("etc/missing.yaml"))
	abs := filepath.Join(dir, "nowhere.yaml")
	require.Equal(t, abs, confkit.LocateFile(abs))
}
