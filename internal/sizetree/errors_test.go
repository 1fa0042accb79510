package sizetree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PathDoesNotExist, classify(fs.ErrNotExist))
	assert.Equal(t, PermissionDenied, classify(&fs.PathError{Op: "open", Path: "x", Err: os.ErrPermission}))
	assert.Equal(t, OtherIOError, classify(errors.New("device error")))
}

func TestScanErrorIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("startup: %w", wrap("/missing", fs.ErrNotExist))

	assert.ErrorIs(t, err, ErrPathDoesNotExist)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, PathDoesNotExist, KindOf(err))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.Contains(t, err.Error(), `path does not exist: "/missing"`)
}
