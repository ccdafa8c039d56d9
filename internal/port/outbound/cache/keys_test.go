package cache

import (
	"net/url"
	"testing"
)

func TestRequestKey(t *testing.T) {
	t.Run("parameter order is irrelevant", func(t *testing.T) {
		a, _ := url.ParseQuery("a=1&b=2")
		b, _ := url.ParseQuery("b=2&a=1")

		if RequestKey("/markets", a) != RequestKey("/markets", b) {
			t.Errorf("reordered params produced different keys: %q vs %q",
				RequestKey("/markets", a), RequestKey("/markets", b))
		}
	})

	t.Run("different paths never collide", func(t *testing.T) {
		q := url.Values{}
		if RequestKey("/markets", q) == RequestKey("/markets/m1/sentiment", q) {
			t.Error("distinct paths mapped to the same key")
		}
	})

	t.Run("different parameters never collide", func(t *testing.T) {
		a, _ := url.ParseQuery("limit=10")
		b, _ := url.ParseQuery("limit=20")
		if RequestKey("/markets", a) == RequestKey("/markets", b) {
			t.Error("distinct queries mapped to the same key")
		}
	})
}

func TestWithIdentity(t *testing.T) {
	base := RequestKey("/markets", url.Values{})

	if WithIdentity(base, "u1") == base {
		t.Error("identity-scoped key must differ from the shared key")
	}
	if WithIdentity(base, "u1") == WithIdentity(base, "u2") {
		t.Error("different users mapped to the same key")
	}
}
