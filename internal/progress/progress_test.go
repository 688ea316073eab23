package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitWritesSenderAndMessage(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	Emit("writer", "indexed src/a.go")

	out := buf.String()
	assert.Contains(t, out, "writer")
	assert.Contains(t, out, "indexed src/a.go")
}

func TestEmitIsNoopWithoutWriter(t *testing.T) {
	SetWriter(nil)
	assert.NotPanics(t, func() { Emit("writer", "no sink configured") })
}

func TestSetWriterNilSilencesSubsequentEmit(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	Emit("writer", "first")
	SetWriter(nil)
	Emit("writer", "second")

	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
}
