package exreader

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", NewError(KindMalformedTable, "extract", "ITEM.xlsx", cause))

	assert.ErrorIs(t, err, ErrMalformedTable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindMalformedTable, KindOf(err))
	assert.Equal(t, KindIOFailure, KindOf(cause))
	assert.Equal(t, "wrapped: extract ITEM.xlsx: boom", err.Error())
	assert.Equal(t, "list: boom", NewError(KindIOFailure, "list", "", cause).Error())
}
