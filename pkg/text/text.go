/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package text

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	UTF8 = "UTF-8"
	// Auto asks the line source to detect the charset from the first chunk of input.
	Auto = "auto"
)

var (
	expectedCharsets = []string{UTF8, "GB-18030"}
	decoderMap       = make(map[string]encoding.Encoding)

	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

type (
	// LineDecoder turns the raw bytes of one line into valid UTF-8 text.
	LineDecoder func([]byte) (string, error)
)

func init() {
	decoderMap["GB-18030"] = simplifiedchinese.GB18030
	// alias
	decoderMap["GB18030"] = simplifiedchinese.GB18030
	decoderMap["GBK"] = simplifiedchinese.GB18030
	decoderMap["GB2312"] = simplifiedchinese.GB18030
	decoderMap["ISO-8859-1"] = charmap.ISO8859_1
	decoderMap["LATIN1"] = charmap.ISO8859_1
}

// DetectCharset detects charset from bytes
func DetectCharset(bs []byte) string {
	if charsetResults, err := chardet.NewTextDetector().DetectAll(bs); err == nil {
		for _, expected := range expectedCharsets {
			for _, result := range charsetResults {
				if result.Charset == expected {
					return result.Charset
				}
			}
		}
	}

	return UTF8
}

// GetEncoding returns the encoding for charset. A nil encoding with a nil error means UTF-8.
func GetEncoding(charset string) (encoding.Encoding, error) {
	if IsUTF8(charset) {
		return nil, nil
	}
	if e, ok := decoderMap[strings.ToUpper(charset)]; ok {
		return e, nil
	}
	e, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported charset %q", charset)
	}
	return e, nil
}

func IsUTF8(charset string) bool {
	switch strings.ToUpper(charset) {
	case "", UTF8, "UTF8":
		return true
	}
	return false
}

// ValidateCharset reports whether NewLineDecoder would accept charset.
func ValidateCharset(charset string) error {
	if charset == Auto {
		return nil
	}
	_, err := GetEncoding(charset)
	return err
}

// NewLineDecoder builds a LineDecoder for a concrete charset (not Auto).
func NewLineDecoder(charset string) (LineDecoder, error) {
	e, err := GetEncoding(charset)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return decodeUTF8, nil
	}
	decoder := e.NewDecoder()
	return func(bs []byte) (string, error) {
		decoded, err := decoder.Bytes(bs)
		if err != nil {
			return "", errors.Wrapf(err, "decode %s", charset)
		}
		if !utf8.Valid(decoded) {
			return "", ErrInvalidUTF8
		}
		return string(decoded), nil
	}, nil
}

func decodeUTF8(bs []byte) (string, error) {
	if !utf8.Valid(bs) {
		return "", ErrInvalidUTF8
	}
	return string(bs), nil
}
