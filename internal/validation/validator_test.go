package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webvault/webvault-server/internal/store"
)

type createFolderRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type createTagRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(createFolderRequest{Name: "research"})
	assert.NoError(t, err)
}

func TestValidate_Required(t *testing.T) {
	v := New()

	err := v.Validate(createFolderRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrInvalidInput))
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(createTagRequest{Name: "go", Color: "not-a-color"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color must be a hex color")
}

func TestValidate_MultipleFieldsSorted(t *testing.T) {
	v := New()

	err := v.Validate(createTagRequest{Color: "nope"})
	require.Error(t, err)
	// Sorted field order keeps the message stable across runs.
	assert.Contains(t, err.Error(), "color must be a hex color; name is required")
}
