package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureDir(".gomate")
	require.NoError(t, err)

	// macOS temp dirs live behind a /private symlink
	want, err := filepath.EvalSymlinks(filepath.Join(tmp, ".gomate"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_AbsoluteNested(t *testing.T) {
	want := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// second call on an existing directory is a no-op
	got, err = EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomate.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func stubHome(t *testing.T, home string, err error) {
	t.Helper()
	old := userHomeDir
	userHomeDir = func() (string, error) { return home, err }
	t.Cleanup(func() { userHomeDir = old })
}

func TestExpandHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "alice")
	stubHome(t, home, nil)

	cases := map[string]string{
		"~":               home,
		"~/.gomate":       filepath.Join(home, ".gomate"),
		"/var/lib/gomate": "/var/lib/gomate",
		"data":            "data",
		"~other/x":        "~other/x",
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestEnsureDir_HomeUnavailable(t *testing.T) {
	stubHome(t, "", errors.New("no home"))

	_, err := EnsureDir("~/.gomate")
	require.ErrorContains(t, err, "no home")
}
