package share

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skip2/go-qrcode"
)

// Query parameter names. ParamLegacy is still accepted on import.
const (
	ParamData   = "data"
	ParamLegacy = "import"
)

// Link appends token to base as the data query parameter. An empty base
// yields a bare query string.
func Link(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing share base url %q: %w", base, err)
	}
	q := u.Query()
	q.Del(ParamLegacy)
	q.Set(ParamData, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseLink decodes a share link, a bare query string or a bare token. The
// data parameter wins; the legacy import parameter is tried when data is
// absent or fails to decode.
func ParseLink(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	var query string
	switch {
	case strings.Contains(s, "?"):
		query = s[strings.Index(s, "?")+1:]
	case strings.HasPrefix(s, ParamData+"=") || strings.HasPrefix(s, ParamLegacy+"="):
		query = s
	default:
		return Decode(s)
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Payload{}, invalidData(err)
	}
	data, legacy := values.Get(ParamData), values.Get(ParamLegacy)
	if data != "" {
		p, err := Decode(data)
		if err == nil || legacy == "" {
			return p, err
		}
	}
	if legacy != "" {
		return DecodeLegacy(legacy)
	}
	return Payload{}, invalidData(errors.New("link carries no share data"))
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyLink puts link on the system clipboard. When no clipboard is available
// the link is printed to fallback instead and false is returned.
func CopyLink(link string, fallback io.Writer) bool {
	if !clipboard.Unsupported {
		if err := writeClipboard(link); err == nil {
			return true
		}
	}
	fmt.Fprintln(fallback, link)
	return false
}

// WriteQRCode renders link as a PNG QR code of size pixels at path.
func WriteQRCode(link, path string, size int) error {
	if err := qrcode.WriteFile(link, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("writing QR code: %w", err)
	}
	return nil
}
