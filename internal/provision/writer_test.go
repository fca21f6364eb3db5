package provision

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packagesmith/packagesmith/internal/fsys"
)

func TestWriteAll(t *testing.T) {
	mem := fsys.Memory()
	set := NewSet().
		Add("README.md", Entry{}).
		Add("bin/run", Entry{Permissions: Mode(0o755)}).
		Add("deep/nested/dir", Entry{Kind: KindDirectory})
	next := map[string]string{"README.md": "# hi\n", "bin/run": "#!/bin/sh\n"}

	require.NoError(t, WriteAll(context.Background(), mem, set, next, nil))

	data, err := mem.ReadFile("README.md")
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))

	data, err = mem.ReadFile("bin/run")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))
	mode, ok := mem.Mode("bin/run")
	require.True(t, ok)
	assert.Equal(t, os.FileMode(0o755), mode)

	info, err := mem.Stat("deep/nested/dir")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, ok = mem.Mode("README.md")
	assert.False(t, ok)
}

func TestWriteAll_EmptyContents(t *testing.T) {
	mem := fsys.Memory()
	require.NoError(t, mem.WriteFile("x.txt", []byte("old"), 0o644))

	require.NoError(t, WriteAll(context.Background(), mem, NewSet().Add("x.txt", Entry{}), nil, nil))
	data, err := mem.ReadFile("x.txt")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteAll_WriteFailure(t *testing.T) {
	fs := &failingFS{FS: fsys.Memory(), failWrite: map[string]bool{"bad.txt": true}}
	set := NewSet().Add("bad.txt", Entry{Permissions: Mode(0o600)})

	err := WriteAll(context.Background(), fs, set, map[string]string{"bad.txt": "x"}, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeWrite))
	assert.Contains(t, err.Error(), "bad.txt")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteAll_ChmodFailure(t *testing.T) {
	mem := fsys.Memory()
	fs := &failingFS{FS: mem, failChmod: map[string]bool{"run.sh": true}}
	set := NewSet().Add("run.sh", Entry{Permissions: Mode(0o755)})

	err := WriteAll(context.Background(), fs, set, map[string]string{"run.sh": "echo"}, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeWrite))

	// The contents were written before permissions failed.
	data, rerr := mem.ReadFile("run.sh")
	require.NoError(t, rerr)
	assert.Equal(t, "echo", string(data))
}
