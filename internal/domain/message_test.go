package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected MessageClass
	}{
		{"error keyword", MsgVerifyFailed, MessageError},
		{"not found", MsgNotFound, MessageError},
		{"bad request", BadRequestMessage("Imagen vacía"), MessageError},
		{"new photo", SuccessMessage("Ana", true), MessageSuccess},
		{"existing photo", SuccessMessage("Ana", false), MessageSuccess},
		{"perfecto", "¡Perfecto! Ahora toma tu foto.", MessageSuccess},
		{"warning", MsgEmptyIdentifier, MessageWarning},
		{"busy", MsgBusy, MessageWarning},
		{"plain", MsgStartingCamera, MessageInfo},
		{"empty", "", MessageInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyMessage(tt.text))
		})
	}
}

func TestSuccessMessage_Wording(t *testing.T) {
	generated := SuccessMessage("Ana", true)
	assert.Contains(t, generated, "Ana")
	assert.Contains(t, generated, "generada")

	existing := SuccessMessage("Ana", false)
	assert.Contains(t, existing, "Ana")
	assert.NotContains(t, existing, "generada")
}

func TestBadRequestMessage_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Error: Datos inválidos", BadRequestMessage(""))
	assert.Equal(t, "Error: Datos inválidos", BadRequestMessage("   "))
	assert.Equal(t, "Error: imagen corrupta", BadRequestMessage("imagen corrupta"))
}
