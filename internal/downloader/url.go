package downloader

import (
	"strings"

	apperrors "youtube-whisper/internal/app/errors"
)

// allowedHosts lists the hosting domains a source URL must mention.
var allowedHosts = []string{"youtube.com", "youtu.be", "m.youtube.com"}

// ValidateURL trims raw and checks it against the known hosting domains.
// It returns the trimmed URL.
func ValidateURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidURL, "no URL provided")
	}

	lower := strings.ToLower(url)
	for _, host := range allowedHosts {
		if strings.Contains(lower, host) {
			return url, nil
		}
	}
	return "", apperrors.Wrapf(apperrors.ErrInvalidURL, "unsupported host in %q (expected one of %s)", url, strings.Join(allowedHosts, ", "))
}
