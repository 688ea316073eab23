package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorFormatsOperationAndCause(t *testing.T) {
	cause := errors.New("missing Path attribute")
	err := NewConfigError("open index", cause)
	assert.Equal(t, "config: open index: missing Path attribute", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIOErrorFormatsWithPath(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("open", "src/a.go", cause, true)
	assert.Equal(t, "io: open src/a.go: permission denied", err.Error())
	assert.True(t, err.Recoverable)
	assert.ErrorIs(t, err, cause)
}

func TestIOErrorFormatsWithoutPath(t *testing.T) {
	cause := errors.New("disk full")
	err := NewIOError("enumerate", "", cause, false)
	assert.Equal(t, "io: enumerate: disk full", err.Error())
	assert.False(t, err.Recoverable)
}

func TestParseErrorFormatsSearchTypeAndQuery(t *testing.T) {
	cause := errors.New("unexpected token AND")
	err := NewParseError("Contents", "a AND", cause)
	assert.Equal(t, `parse: invalid Contents query "a AND": unexpected token AND`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestLockErrorFormatsPathAndCause(t *testing.T) {
	cause := errors.New("already locked")
	err := NewLockError("/tmp/idx", cause)
	assert.Equal(t, "lock: /tmp/idx: already locked", err.Error())
	assert.ErrorIs(t, err, cause)
}
