package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindInvalid, KindOf(Invalid("bad input")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("who")))
	assert.Equal(t, KindUpstream, KindOf(Upstream(errors.New("down"), "store failed")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("booking not found"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "booking not found", Message(err))
}

func TestMessageHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Upstream(cause, "failed to load booking")

	assert.Equal(t, "failed to load booking", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessagePlainError(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("oops")))
}
