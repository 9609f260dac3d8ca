package helpers

import (
	"crypto/rand"
	"fmt"
	"time"
)

// OTPDigits is the width of every one-time code the API issues.
const OTPDigits = 6

// GenOTPCode generates a secure random 6-digit code as a zero-padded
// string. Codes are drawn from crypto/rand so one code tells you nothing
// about the next.
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%0*d", OTPDigits, n%1000000), nil
}

// NewOTP returns a fresh code together with its expiry, "now + ttl".
func NewOTP(ttl time.Duration) (string, time.Time, error) {
	code, err := GenOTPCode()
	if err != nil {
		return "", time.Time{}, err
	}
	return code, time.Now().Add(ttl), nil
}
