package paddle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d:", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func header(ts int64, h1 string) string {
	return fmt.Sprintf("ts=%d;h1=%s", ts, h1)
}

func TestVerifyValidSignature(t *testing.T) {
	now := time.Now()
	body := []byte(`{"event_type":"transaction.paid","data":{"id":"txn_1"}}`)
	secret := "whsec_test"
	ts := now.Unix()

	sig := header(ts, signBody(secret, ts, body))
	assert.True(t, verifyAt(secret, sig, body, now))
}

func TestVerifyTamperedBody(t *testing.T) {
	now := time.Now()
	body := []byte(`{"event_type":"transaction.paid"}`)
	secret := "whsec_test"
	ts := now.Unix()

	sig := header(ts, signBody(secret, ts, body))

	tampered := append([]byte{}, body...)
	tampered[0] = '['
	assert.False(t, verifyAt(secret, sig, tampered, now))
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	ts := now.Unix()

	sig := header(ts, signBody("whsec_test", ts, body))
	assert.False(t, verifyAt("whsec_other", sig, body, now))
}

func TestVerifyTamperedTimestamp(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	secret := "whsec_test"
	ts := now.Unix()

	// Signature computed for ts but header claims ts+1.
	sig := header(ts+1, signBody(secret, ts, body))
	assert.False(t, verifyAt(secret, sig, body, now))
}

func TestVerifyStaleTimestamp(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	secret := "whsec_test"
	ts := now.Add(-6 * time.Minute).Unix()

	sig := header(ts, signBody(secret, ts, body))
	assert.False(t, verifyAt(secret, sig, body, now))
}

func TestVerifyFutureTimestampWithinWindow(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	secret := "whsec_test"
	ts := now.Add(2 * time.Minute).Unix()

	sig := header(ts, signBody(secret, ts, body))
	assert.True(t, verifyAt(secret, sig, body, now))
}

func TestVerifyMalformedHeaders(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	secret := "whsec_test"
	ts := now.Unix()
	h1 := signBody(secret, ts, body)

	cases := map[string]string{
		"empty":        "",
		"missing ts":   "h1=" + h1,
		"missing h1":   fmt.Sprintf("ts=%d", ts),
		"garbage":      "not-a-signature",
		"bad ts value": "ts=abc;h1=" + h1,
	}

	for name, hdr := range cases {
		assert.False(t, verifyAt(secret, hdr, body, now), name)
	}
}

func TestVerifyMissingSecret(t *testing.T) {
	now := time.Now()
	body := []byte(`{}`)
	ts := now.Unix()

	sig := header(ts, signBody("", ts, body))
	assert.False(t, verifyAt("", sig, body, now))
}
