package security

import "crypto/rand"

const otpLength = 6

// GenerateOTP returns a 6 digit one-time code as a zero-padded string.
// Digits are drawn with rejection sampling so every value 0-9 is
// equally likely
func GenerateOTP() (string, error) {
	code := make([]byte, otpLength)
	buf := make([]byte, 1)

	for i := 0; i < otpLength; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		// 250 is the largest multiple of 10 that fits in a byte
		if buf[0] >= 250 {
			continue
		}

		code[i] = '0' + buf[0]%10
		i++
	}

	return string(code), nil
}
