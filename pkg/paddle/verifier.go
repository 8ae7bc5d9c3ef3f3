package paddle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// MaxSignatureAge bounds how far a webhook timestamp may drift from the
// current clock before the delivery is treated as a replay.
const MaxSignatureAge = 5 * time.Minute

// Verify checks a Paddle-Signature header of the form "ts=<unix>;h1=<hex>"
// against the raw request body. The signed payload is "<ts>:<body>".
func Verify(secret, header string, body []byte) bool {
	return verifyAt(secret, header, body, time.Now())
}

func verifyAt(secret, header string, body []byte, now time.Time) bool {
	if secret == "" || header == "" {
		return false
	}

	var tsPart, h1Part string
	for _, segment := range strings.Split(header, ";") {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			tsPart = value
		case "h1":
			h1Part = value
		}
	}
	if tsPart == "" || h1Part == "" {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return false
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > MaxSignatureAge || age < -MaxSignatureAge {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(tsPart))
	mac.Write([]byte(":"))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(h1Part))
}
