package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GenerateTransactionID produces an opaque payment transaction reference,
// e.g. TXN-20240101-120000-042-8133.
func GenerateTransactionID() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"TXN-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}
