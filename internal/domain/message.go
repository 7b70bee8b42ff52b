package domain

import (
	"fmt"
	"strings"
)

// MessageClass is the presentation class of a status message
type MessageClass string

const (
	MessageError   MessageClass = "error"
	MessageInfo    MessageClass = "info"
	MessageSuccess MessageClass = "success"
	MessageWarning MessageClass = "warning"
)

// Status texts shown by the kiosk
const (
	MsgBusy               = "Por favor espera, ya estamos procesando tu solicitud."
	MsgCameraFailed       = "Error al iniciar la cámara. Vuelve atrás e inténtalo de nuevo."
	MsgCameraPermission   = "Error al acceder a la cámara. Verifica los permisos."
	MsgCameraUnavailable  = "Error: no se encontró una cámara disponible."
	MsgCaptureNotReady    = "Error: la cámara aún no está lista para tomar la foto."
	MsgEmptyIdentifier    = "Por favor ingresa tu cédula"
	MsgGenerateFailed     = "Error al procesar la imagen. Inténtalo de nuevo."
	MsgInvalidAction      = "Por favor completa el paso actual antes de continuar."
	MsgInvalidIdentifier  = "Por favor ingresa solo los números de tu cédula"
	MsgInvalidPayload     = "Datos inválidos"
	MsgMissingProfile     = "Error: No se ha proporcionado cédula o datos de usuario"
	MsgNotFound           = "Usuario no encontrado con esa cédula. Verifica que el número sea correcto."
	MsgProgressDone       = "🎉 ¡Listo! Mostrando tu foto de graduación..."
	MsgStartingCamera     = "Iniciando cámara..."
	MsgVerifyFailed       = "Error al verificar la cédula. Inténtalo de nuevo."
	successExistingFormat = "¡Excelente %s! Aquí está tu foto de graduación."
	successNewFormat      = "¡Increíble %s! Tu nueva foto de graduación ha sido generada exitosamente."
)

// SuccessMessage returns the personalized result text. generated selects the
// "newly generated" phrasing.
func SuccessMessage(name string, generated bool) string {
	if generated {
		return fmt.Sprintf(successNewFormat, name)
	}
	return fmt.Sprintf(successExistingFormat, name)
}

// BadRequestMessage formats the status text for a rejected generation payload
func BadRequestMessage(serverMessage string) string {
	if strings.TrimSpace(serverMessage) == "" {
		serverMessage = MsgInvalidPayload
	}
	return "Error: " + serverMessage
}

// ClassifyMessage maps a status text to its presentation class.
// It is used for rendering only, never for control flow.
func ClassifyMessage(text string) MessageClass {
	switch {
	case strings.Contains(text, "Error") || strings.Contains(text, "no encontrado"):
		return MessageError
	case strings.Contains(text, "Perfecto") || strings.Contains(text, "Increíble") || strings.Contains(text, "Excelente"):
		return MessageSuccess
	case strings.Contains(text, "Por favor"):
		return MessageWarning
	default:
		return MessageInfo
	}
}
