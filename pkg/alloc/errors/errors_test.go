package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError_Error(t *testing.T) {
	t.Run("error with name includes name", func(t *testing.T) {
		err := NewNotFoundError("a.txt")
		assert.Equal(t, "NotFound: file not found (name: a.txt)", err.Error())
	})

	t.Run("error without name", func(t *testing.T) {
		err := NewInvalidInputError("name must not be empty")
		assert.Equal(t, "InvalidInput: name must not be empty", err.Error())
	})
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "DuplicateName", ErrDuplicateName.String())
	assert.Equal(t, "InsufficientSpace", ErrInsufficientSpace.String())
	assert.Equal(t, "NotFound", ErrNotFound.String())
	assert.Equal(t, "InvalidInput", ErrInvalidInput.String())
	assert.Equal(t, "Unknown(99)", ErrorCode(99).String())
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"duplicate", NewDuplicateNameError("a"), IsDuplicateNameError},
		{"space", NewInsufficientSpaceError("a", 3, 1), IsInsufficientSpaceError},
		{"not found", NewNotFoundError("a"), IsNotFoundError},
		{"invalid", NewInvalidInputError("bad"), IsInvalidInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(fmt.Errorf("plain")))
	assert.Equal(t, ErrorCode(0), CodeOf(fmt.Errorf("plain")))
}
