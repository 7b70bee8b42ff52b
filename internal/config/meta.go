package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Name() == "KeyBindingsConfig" {
		return map[string]any{
			"capture": []string{"enter", " "},
			"save":    "g",
		}
	}

	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "cached_duration_seconds":
				return 15
			case "camera_height":
				return 720
			case "camera_width":
				return 1280
			case "fresh_duration_seconds":
				return 85
			case "max_log_files":
				return 200
			case "settle_delay_ms":
				return 2000
			case "ssh_port":
				return 23234
			default:
				return 10
			}
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "api_url":
			return "http://localhost:5000"
		case "authorized_keys":
			return "~/.toga/authorized_keys"
		case "camera_device":
			return "/dev/video0"
		case "camera_still":
			return "~/Pictures/sample.jpg"
		case "downloads_dir":
			return "~/Downloads"
		case "metrics_address":
			return ":9090"
		case "provisional_profile":
			return "fresh"
		case "ssh_host":
			return "0.0.0.0"
		default:
			return "example"
		}
	}

	return nil
}
