package server

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"

	"toga/internal/logging"
)

// publicKeyHandler accepts keys listed in authorizedKeysPath. Every key is
// accepted only when allowAny is set; an empty path then rejects them all.
func publicKeyHandler(authorizedKeysPath string, allowAny bool) ssh.PublicKeyHandler {
	return func(ctx ssh.Context, key ssh.PublicKey) bool {
		fingerprint := gossh.FingerprintSHA256(key)
		user := ctx.User()

		if allowAny {
			logging.Logger.Info("SSH key accepted (open kiosk)",
				"user", user,
				"fingerprint", fingerprint,
				"key_type", key.Type())
			return true
		}
		if authorizedKeysPath == "" {
			logging.Logger.Warn("SSH key rejected, no authorized_keys configured",
				"user", user,
				"fingerprint", fingerprint)
			return false
		}

		authorized := isKeyAuthorized(key, authorizedKeysPath)
		if authorized {
			logging.Logger.Info("SSH key authenticated",
				"user", user,
				"fingerprint", fingerprint,
				"key_type", key.Type())
		} else {
			logging.Logger.Warn("Unauthorized SSH key",
				"user", user,
				"fingerprint", fingerprint,
				"key_type", key.Type())
		}
		return authorized
	}
}

// isKeyAuthorized checks if the client's public key is in authorized_keys
func isKeyAuthorized(clientKey ssh.PublicKey, authorizedKeysPath string) bool {
	file, err := os.Open(authorizedKeysPath)
	if err != nil {
		logging.Logger.Warn("Failed to open authorized_keys", "error", err, "path", authorizedKeysPath)
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		authorizedKey, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			logging.Logger.Debug("Failed to parse authorized key line", "error", err)
			continue
		}

		if bytes.Equal(clientKey.Marshal(), authorizedKey.Marshal()) {
			return true
		}
	}

	if err := scanner.Err(); err != nil {
		logging.Logger.Error("Error reading authorized_keys", "error", err)
		return false
	}
	return false
}
