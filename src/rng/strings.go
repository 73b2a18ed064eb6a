package rng

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

func BuildCharset(lowers, uppers, numbers, symbols bool) []byte {
	var b []byte
	if lowers {
		b = append(b, []byte("abcdefghijklmnopqrstuvwxyz")...)
	}
	if uppers {
		b = append(b, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")...)
	}
	if numbers {
		b = append(b, []byte("0123456789")...)
	}
	if symbols {
		b = append(b, []byte("!#$%&()*+,-./:;<=>?@[]^_{|}~")...)
	}
	return b
}

// StringFromCharset draws size characters from charset, each via an
// independent unbiased bounded draw.
func StringFromCharset(r io.Reader, h *Health, charset []byte, size int) (string, error) {
	if len(charset) == 0 {
		return "", errors.New("charset must not be empty")
	}
	if size < 1 {
		return "", errors.New("size must be at least 1")
	}

	var out strings.Builder
	out.Grow(size)
	for i := 0; i < size; i++ {
		index, err := Uint64n(r, h, uint64(len(charset)))
		if err != nil {
			return "", err
		}
		out.WriteByte(charset[index])
	}
	return out.String(), nil
}
