package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/finproj/networth-calculator/internal/domain"
)

// ShareVersion is written into every generated share payload.
const ShareVersion = "1.0"

// ShareData is the compact snapshot exchanged through share links: live
// records plus the projection they produced. ProjectionYears is a
// json.Number because existing payloads carry it as either a string or a
// number.
type ShareData struct {
	Investments     []domain.Holding  `json:"investments"`
	Events          domain.Events     `json:"events"`
	Projections     domain.Projection `json:"projections,omitempty"`
	ProjectionYears json.Number       `json:"projectionYears,omitempty"`
	SharedAt        string            `json:"sharedAt"`
	Version         string            `json:"version"`
}

// Years returns the projection horizon carried by the payload, or fallback
// when it is absent or unparseable.
func (s ShareData) Years(fallback int) int {
	n, err := s.ProjectionYears.Int64()
	if err != nil || n <= 0 {
		return fallback
	}
	return int(n)
}

// EncodeShare serializes a snapshot into the share-token format: JSON,
// percent-escaped, then base64. The escaping step keeps the token readable
// by consumers that only handle Latin-1 input.
func EncodeShare(data ShareData) (string, error) {
	if data.SharedAt == "" {
		data.SharedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if data.Version == "" {
		data.Version = ShareVersion
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode share data: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(percentEscape(string(raw)))), nil
}

// DecodeShare reverses EncodeShare.
func DecodeShare(token string) (*ShareData, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid share token: %w", err)
	}
	unescaped, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid share token escaping: %w", err)
	}
	var data ShareData
	if err := json.Unmarshal([]byte(unescaped), &data); err != nil {
		return nil, fmt.Errorf("failed to parse share data: %w", err)
	}
	return &data, nil
}

// percentEscape escapes a string the way encodeURIComponent does: every
// byte outside the unreserved set becomes %XX.
func percentEscape(s string) string {
	const unreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(unreserved, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
