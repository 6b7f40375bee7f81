package rand_test

import (
	"testing"

	"github.com/openscilab/pycm-api/pkg/utils/rand"
)

func TestURLSafeToken(t *testing.T) {
	t.Run("tokens are non-empty and distinct", func(t *testing.T) {
		a, err := rand.URLSafeToken(32)
		if err != nil {
			t.Fatal(err)
		}
		b, err := rand.URLSafeToken(32)
		if err != nil {
			t.Fatal(err)
		}
		if a == "" || b == "" {
			t.Error("empty token")
		}
		if a == b {
			t.Error("two tokens are equal, unexpectedly")
		}
	})

	t.Run("tokens are url-safe", func(t *testing.T) {
		tok, err := rand.URLSafeToken(64)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range tok {
			switch {
			case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '_':
			default:
				t.Errorf("token holds non-url-safe rune: %q", r)
			}
		}
	})
}
