package tgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tgen"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := tgen.NewNotFoundError("entity", "Author")
		assert.Equal(t, `tgen: entity "Author" not found`, err.Error())
		assert.Equal(t, "entity", err.Kind())
		assert.Equal(t, "Author", err.Name())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := tgen.NewNotFoundError("target", "Bean")
		assert.True(t, errors.Is(err, tgen.ErrNotFound))
		assert.True(t, tgen.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, tgen.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, tgen.IsNotFound(tgen.ErrNotFound))

		// Non-matching error
		assert.False(t, tgen.IsNotFound(errors.New("other error")))
		assert.False(t, tgen.IsNotFound(nil))
	})
}

func TestFolderMismatchError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := tgen.NewFolderMismatchError("src/com/demo", "lib")
		assert.Equal(t, `tgen: folder "src/com/demo" not started with the given src folder "lib"`, err.Error())
	})

	t.Run("IsFolderMismatch", func(t *testing.T) {
		err := tgen.NewFolderMismatchError("a", "b")
		assert.True(t, errors.Is(err, tgen.ErrFolderMismatch))
		assert.True(t, tgen.IsFolderMismatch(fmt.Errorf("wrap: %w", err)))
		assert.False(t, tgen.IsFolderMismatch(errors.New("other error")))
		assert.False(t, tgen.IsFolderMismatch(nil))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		err := tgen.NewConfigError("Workers", -1, "must be positive")
		assert.Equal(t, `tgen: config error for "Workers" (value: -1): must be positive`, err.Error())
	})

	t.Run("without value", func(t *testing.T) {
		err := tgen.NewConfigError("Destination", nil, "cannot be empty")
		assert.Equal(t, `tgen: config error for "Destination": cannot be empty`, err.Error())
	})

	t.Run("IsConfigError", func(t *testing.T) {
		err := tgen.NewConfigError("Renderer", nil, "cannot be nil")
		assert.True(t, errors.Is(err, tgen.ErrMissingConfig))
		assert.True(t, tgen.IsConfigError(fmt.Errorf("wrap: %w", err)))
		assert.False(t, tgen.IsConfigError(errors.New("other error")))
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *tgen.ValidationError
		expected string
	}{
		{
			name:     "entity and attribute",
			err:      tgen.NewValidationError("Author", "email", "duplicate attribute"),
			expected: "tgen: validation error on entity Author attribute email: duplicate attribute",
		},
		{
			name:     "entity only",
			err:      tgen.NewValidationError("Author", "", "duplicate entity"),
			expected: "tgen: validation error on entity Author: duplicate entity",
		},
		{
			name:     "message only",
			err:      tgen.NewValidationError("", "", "empty class name"),
			expected: "tgen: validation error: empty class name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, tgen.ErrValidationFailed))
			assert.True(t, tgen.IsValidationError(tt.err))
		})
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("template: no such template")
	err := tgen.NewGenerationError("Java Bean", "Author", "src/Author.java", "render", cause)

	assert.Equal(t, "tgen: generation error in target Java Bean for entity Author (file: src/Author.java): render: template: no such template", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, tgen.ErrGenerationFailed))
	assert.True(t, tgen.IsGenerationError(fmt.Errorf("wrap: %w", err)))
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		assert.Nil(t, tgen.NewAggregateError())
	})

	t.Run("NilErrors", func(t *testing.T) {
		assert.Nil(t, tgen.NewAggregateError(nil, nil))
	})

	t.Run("SingleError", func(t *testing.T) {
		single := errors.New("single error")
		assert.Equal(t, single, tgen.NewAggregateError(nil, single))
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err1 := tgen.NewValidationError("A", "", "one")
		err2 := errors.New("error 2")
		err := tgen.NewAggregateError(err1, err2)

		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "multiple errors")
		assert.Contains(t, err.Error(), "[2] error 2")
		assert.True(t, errors.Is(err, err2))
		assert.True(t, tgen.IsValidationError(err))
	})
}
