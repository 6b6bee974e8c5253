package domain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docscan/docscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot_Directory(t *testing.T) {
	dir := t.TempDir()
	got, err := domain.ResolveRoot(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_FollowsSymlink(t *testing.T) {
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "checkout")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := domain.ResolveRoot(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_Missing(t *testing.T) {
	_, err := domain.ResolveRoot(filepath.Join(t.TempDir(), "gone"))
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolveRoot_DanglingSymlink(t *testing.T) {
	link := filepath.Join(t.TempDir(), "dangling")
	if err := os.Symlink(filepath.Join(t.TempDir(), "gone"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := domain.ResolveRoot(link)
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestResolveRoot_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "Order.cs")
	require.NoError(t, os.WriteFile(file, []byte("class Order {}"), 0o644))

	_, err := domain.ResolveRoot(file)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, err.Error(), "not a directory")
}
