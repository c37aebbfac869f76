package polcat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/polcat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := polcat.Errorf(polcat.EMALFORMED, "link %q has no id", "/pol/doc-eng.aspx")

	assert.Equal(t, polcat.EMALFORMED, polcat.ErrorCode(err))
	assert.Equal(t, "link \"/pol/doc-eng.aspx\" has no id", polcat.ErrorMessage(err))
	assert.Contains(t, err.Error(), "code=malformed")
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("export: %w", polcat.Errorf(polcat.EIO, "disk full"))

	assert.Equal(t, polcat.EIO, polcat.ErrorCode(err))
	assert.Equal(t, "disk full", polcat.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, polcat.EINTERNAL, polcat.ErrorCode(err))
	assert.Equal(t, "boom", polcat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, polcat.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, polcat.ErrorMessage(nil))
}
