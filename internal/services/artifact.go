package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"toga/internal/domain"
	"toga/internal/logging"
)

// ErrUnsupportedArtifact is returned for artifact references that are not a
// URL, a data URI or a readable file
var ErrUnsupportedArtifact = fmt.Errorf("unsupported artifact reference: %w", domain.ErrValidation)

// invalidFileNameChars matches characters that are not portable in file names
var invalidFileNameChars = regexp.MustCompile(`[\x00-\x1f/\\:*?"<>|]+`)

// whitespaceRuns matches one or more whitespace characters
var whitespaceRuns = regexp.MustCompile(`\s+`)

// ArtifactService saves generated graduation photos to disk
type ArtifactService struct {
	dir        string
	httpClient *http.Client
}

// NewArtifactService creates a new ArtifactService writing into dir
func NewArtifactService(dir string, httpClient *http.Client) *ArtifactService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ArtifactService{
		dir:        dir,
		httpClient: httpClient,
	}
}

// Dir returns the directory photos are saved into
func (s *ArtifactService) Dir() string {
	return s.dir
}

// ArtifactFileName returns the download name of a profile's photo:
// graduacion_{name}_{cedula}.png
func ArtifactFileName(profile domain.Profile) string {
	name := sanitizeFileComponent(profile.Name)
	if name == "" {
		name = "foto"
	}
	cedula := sanitizeFileComponent(profile.Cedula)
	if cedula == "" {
		return fmt.Sprintf("graduacion_%s.png", name)
	}
	return fmt.Sprintf("graduacion_%s_%s.png", name, cedula)
}

func sanitizeFileComponent(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = invalidFileNameChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "._")
}

// Save fetches artifact (an http(s) URL, a data URI or a local path) and
// writes it to the downloads directory. Returns the written path.
func (s *ArtifactService) Save(ctx context.Context, artifact string, profile domain.Profile) (string, error) {
	data, err := s.Load(ctx, artifact)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	dest := filepath.Join(s.dir, ArtifactFileName(profile))
	tmp, err := os.CreateTemp(s.dir, ".graduacion-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	logging.Logger.Info("Graduation photo saved", "path", dest, "bytes", len(data))
	return dest, nil
}

// Load returns the bytes an artifact reference points to
func (s *ArtifactService) Load(ctx context.Context, artifact string) ([]byte, error) {
	artifact = strings.TrimSpace(artifact)
	if artifact == "" {
		return nil, fmt.Errorf("empty artifact: %w", ErrUnsupportedArtifact)
	}

	switch {
	case strings.HasPrefix(artifact, "data:"):
		return decodeDataURI(artifact)
	case strings.HasPrefix(artifact, "http://"), strings.HasPrefix(artifact, "https://"):
		return s.download(ctx, artifact)
	case strings.HasPrefix(artifact, "file://"):
		u, err := url.Parse(artifact)
		if err != nil {
			return nil, fmt.Errorf("failed to parse file URL: %w", ErrUnsupportedArtifact)
		}
		return readLocal(u.Path)
	default:
		return readLocal(artifact)
	}
}

func (s *ArtifactService) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logging.Logger.Debug("Downloading artifact", "url", rawURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.BackendError{Err: domain.ErrTransport, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read artifact: %w", domain.ErrTransport, err)
	}
	return data, nil
}

// decodeDataURI decodes RFC 2397 data URIs, base64 or percent encoded
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload: %w", ErrUnsupportedArtifact)
	}

	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some encoders drop the padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("invalid base64 payload: %w", ErrUnsupportedArtifact)
		}
		return data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data URI payload: %w", ErrUnsupportedArtifact)
	}
	return []byte(decoded), nil
}

func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("artifact %s: %w", path, ErrUnsupportedArtifact)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}
