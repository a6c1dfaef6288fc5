package sitewalk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitewalk"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitewalk.Errorf(sitewalk.ESTATUS, "HTTP %d for %s", 404, "https://example.com/a")

	assert.Equal(t, sitewalk.ESTATUS, sitewalk.ErrorCode(err))
	assert.Equal(t, "HTTP 404 for https://example.com/a", sitewalk.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", sitewalk.Errorf(sitewalk.EREDIRECT, "stopped after 30 redirects"))

	assert.Equal(t, sitewalk.EREDIRECT, sitewalk.ErrorCode(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sitewalk.EINTERNAL, sitewalk.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", sitewalk.ErrorMessage(errors.New("boom")))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitewalk.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitewalk.ErrorMessage(nil))
}
