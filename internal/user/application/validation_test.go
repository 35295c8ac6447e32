package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

func TestValidatePasswordCountsCharactersNotBytes(t *testing.T) {
	tests := []struct {
		name     string
		password string
		fields   []pkgApp.FieldError
	}{
		{"seven accented characters", "Pässwö1", []pkgApp.FieldError{
			{Msg: "Password must be at least 8 characters long", Path: "password"},
		}},
		{"eight accented characters", "Pässwör1", nil},
		{"eight ascii characters", "Passwor1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fields, validatePassword(tt.password))
		})
	}
}
