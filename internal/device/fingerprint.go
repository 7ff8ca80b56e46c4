// Package device derives a stable per-install device fingerprint.
//
// The fingerprint ties attendance events to the physical device that recorded
// them. It is an anti-fraud signal, not an identity credential: it only needs
// to be stable across runs on the same install and distinct between installs.
package device

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	apperrors "github.com/clinichq/attend/internal/errors"
)

const (
	installIDFile  = "device_id"
	installIDBytes = 16
	// fingerprintLen keeps the hex digest short enough to read in logs while
	// leaving no realistic collision chance between a clinic's devices.
	fingerprintLen = 32
)

// Service computes the device fingerprint for this install.
type Service struct {
	configDir string
}

// NewService creates a fingerprint service. An empty configDir uses the
// user's standard config directory.
func NewService(configDir string) *Service {
	return &Service{configDir: configDir}
}

// Fingerprint returns the hex fingerprint for this install: a sha256 over the
// persisted install ID plus hostname and OS facts, truncated. The install ID
// is created on first use and reused afterwards.
func (s *Service) Fingerprint() (string, error) {
	installID, err := s.loadOrCreateInstallID()
	if err != nil {
		return "", err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s", installID, hostname, runtime.GOOS, runtime.GOARCH))
	return hex.EncodeToString(sum[:])[:fingerprintLen], nil
}

func (s *Service) loadOrCreateInstallID() (string, error) {
	dir := s.configDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", apperrors.Wrap(err, "failed to locate user config directory")
		}
		dir = filepath.Join(base, "attend")
	}

	path := filepath.Join(dir, installIDFile)

	data, err := os.ReadFile(path)
	if err == nil && len(data) > 0 {
		return string(data), nil
	}

	buf := make([]byte, installIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate install id")
	}
	installID := hex.EncodeToString(buf)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", apperrors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, []byte(installID), 0o600); err != nil {
		return "", apperrors.Wrap(err, "failed to persist install id")
	}

	return installID, nil
}
