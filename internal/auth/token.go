package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session token format: rl_mock_{userID}_{ulid}
// The ULID embeds the mint time, so tokens are unique per call.
// Example: rl_mock_1_01HV9Z6Q4X8T3Y2K7M5N0P1R2S
const tokenPrefix = "rl_mock_"

var (
	// ErrInvalidTokenFormat indicates the token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid session token format")
	// tokenFormatRegex validates the token format.
	tokenFormatRegex = regexp.MustCompile(`^rl_mock_([0-9]+)_([0-9A-HJKMNP-TV-Z]{26})$`)
)

// NewSessionToken mints an opaque session token for userID at time now.
func NewSessionToken(userID int64, now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return fmt.Sprintf("%s%d_%s", tokenPrefix, userID, id.String()), nil
}

// ParsedToken contains the parsed parts of a session token.
type ParsedToken struct {
	UserID   int64
	IssuedAt time.Time
}

// ParseSessionToken extracts the user id and issue time from a token.
func ParseSessionToken(token string) (*ParsedToken, error) {
	matches := tokenFormatRegex.FindStringSubmatch(token)
	if matches == nil {
		return nil, ErrInvalidTokenFormat
	}

	userID, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return nil, ErrInvalidTokenFormat
	}
	id, err := ulid.ParseStrict(matches[2])
	if err != nil {
		return nil, ErrInvalidTokenFormat
	}

	return &ParsedToken{UserID: userID, IssuedAt: ulid.Time(id.Time())}, nil
}
