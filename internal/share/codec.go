// Package share turns a team into a URL-safe token and back.
//
// A token is compact JSON whose field names are shortened with a fixed table
// (name -> n, totalTime -> t, ...) and then base64 encoded. Tokens from the
// legacy "import" parameter carry plain JSON without shortening.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidData is returned for any token that cannot be imported.
var ErrInvalidData = errors.New("invalid or corrupted share link")

// shortKeys maps full field names to their short codes.
var shortKeys = map[string]string{
	"name":          "n",
	"totalTime":     "t",
	"onField":       "o",
	"sessionStart":  "s",
	"lastTimestamp": "l",
	"rotationLog":   "r",
	"player":        "p",
	"scorer":        "sc",
	"team":          "tm",
	"time":          "ti",
	"quarter":       "q",
	"timestamp":     "ts",
	"type":          "tp",
	"teamName":      "tn",
	"events":        "ev",
	"quarterClocks": "qc",
}

var longKeys = invert(shortKeys)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Encode serialises p into a share token.
func Encode(p Payload) (string, error) {
	data, err := json.Marshal(toWire(p))
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}
	tree, err := parseTree(data)
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}
	short, err := json.Marshal(renameKeys(tree, shortKeys))
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(short), nil
}

// Decode parses a token produced by Encode. Tokens without shortened keys
// decode as well. Every failure wraps ErrInvalidData.
func Decode(token string) (Payload, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return Payload{}, invalidData(err)
	}
	tree, err := parseTree(raw)
	if err != nil {
		return Payload{}, invalidData(err)
	}
	full, err := json.Marshal(renameKeys(tree, longKeys))
	if err != nil {
		return Payload{}, invalidData(err)
	}
	return decodeWire(full)
}

// DecodeLegacy parses a token from the legacy "import" parameter: plain JSON,
// base64 encoded, no key shortening.
func DecodeLegacy(token string) (Payload, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return Payload{}, invalidData(err)
	}
	return decodeWire(raw)
}

func decodeWire(data []byte) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal(data, &w); err != nil {
		return Payload{}, invalidData(err)
	}
	p, err := fromWire(w)
	if err != nil {
		return Payload{}, invalidData(err)
	}
	return p, nil
}

func invalidData(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidData, err)
}

// decodeBase64 accepts the standard and URL alphabets, padded or not. Spaces
// are read as '+', which is what an unescaped query string turns them into.
func decodeBase64(token string) ([]byte, error) {
	token = strings.ReplaceAll(strings.TrimSpace(token), " ", "+")
	if token == "" {
		return nil, errors.New("empty token")
	}
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(token)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// parseTree decodes a single JSON value, keeping numbers exact.
func parseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return tree, nil
}

// renameKeys rewrites object keys found in table, recursively. Values and
// unknown keys are left alone.
func renameKeys(v any, table map[string]string) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if renamed, ok := table[k]; ok {
				k = renamed
			}
			out[k] = renameKeys(val, table)
		}
		return out
	case []any:
		for i := range x {
			x[i] = renameKeys(x[i], table)
		}
		return x
	}
	return v
}
