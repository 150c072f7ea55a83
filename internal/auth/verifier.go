// Package auth verifies the launch payload ("init data") that Telegram
// attaches when it opens the mini app.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/mistermo/internal/models"
)

var (
	// ErrEmptyInitData is returned for an empty launch payload.
	ErrEmptyInitData = errors.New("no init_data provided")
	// ErrInvalidInitData is returned when the payload cannot be parsed or
	// its signature does not match.
	ErrInvalidInitData = errors.New("invalid init_data")
	// ErrExpiredInitData is returned when auth_date is older than allowed.
	ErrExpiredInitData = errors.New("init_data expired")
)

// InitDataVerifier turns a launch payload into a Telegram identity.
type InitDataVerifier interface {
	Verify(ctx context.Context, initData string) (*models.TelegramIdentity, error)
}

// StubVerifier accepts any non-empty payload and returns a fixed identity.
// It does not check the signature.
type StubVerifier struct{}

// NewStubVerifier creates a StubVerifier.
func NewStubVerifier() *StubVerifier { return &StubVerifier{} }

// StubIdentity is the identity returned by StubVerifier.
var StubIdentity = models.TelegramIdentity{
	ID:        "test_user",
	Username:  "test",
	FirstName: "Test",
	LastName:  "User",
}

func (StubVerifier) Verify(_ context.Context, initData string) (*models.TelegramIdentity, error) {
	if initData == "" {
		return nil, ErrEmptyInitData
	}
	id := StubIdentity
	return &id, nil
}

// HMACVerifier checks the payload the way Telegram documents for WebApps:
// secret = HMAC_SHA256("WebAppData", bot token), and the "hash" field must
// equal hex(HMAC_SHA256(secret, data-check-string)).
type HMACVerifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewHMACVerifier creates a verifier for botToken. A zero maxAge disables
// the auth_date freshness check.
func NewHMACVerifier(botToken string, maxAge time.Duration) *HMACVerifier {
	return &HMACVerifier{
		secret: hmacSHA256([]byte("WebAppData"), []byte(botToken)),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (v *HMACVerifier) Verify(_ context.Context, initData string) (*models.TelegramIdentity, error) {
	if initData == "" {
		return nil, ErrEmptyInitData
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}
	got, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: hash is not hex", ErrInvalidInitData)
	}
	want := hmacSHA256(v.secret, []byte(DataCheckString(values)))
	if !hmac.Equal(got, want) {
		return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidInitData)
	}

	if v.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
		}
		if v.now().Sub(time.Unix(authDate, 0)) > v.maxAge {
			return nil, ErrExpiredInitData
		}
	}

	var user struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user field: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrInvalidInitData)
	}

	return &models.TelegramIdentity{
		ID:        strconv.FormatInt(user.ID, 10),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// Sign returns the hash Telegram would attach to values for botToken.
func Sign(botToken string, values url.Values) string {
	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(DataCheckString(values))))
}

// DataCheckString joins every field except "hash" as key=value lines sorted
// by key.
func DataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
