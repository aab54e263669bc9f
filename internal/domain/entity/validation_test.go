package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid title", "Why does DI matter?", false},
		{"exactly max length", strings.Repeat("a", MaxTitleLength), false},
		{"max length multibyte", strings.Repeat("질", MaxTitleLength), false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", MaxTitleLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var valErr *ValidationError
			assert.True(t, errors.As(err, &valErr))
			assert.Equal(t, "title", valErr.Field)
		})
	}
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("doraemon"))
	assert.Error(t, ValidateUserID(""))
	assert.Error(t, ValidateUserID(strings.Repeat("u", 21)))
}
