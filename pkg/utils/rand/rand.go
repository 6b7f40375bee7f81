package rand

import (
	"crypto/rand"
	"encoding/base64"

	xe "github.com/openscilab/pycm-api/pkg/errors"
)

// URLSafeToken returns a random url-safe string built from n random bytes.
//
// The result is longer than n (base64 expansion), like the tokens issued as
// API keys.
func URLSafeToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", xe.Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
