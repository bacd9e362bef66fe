package gmail

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	gmail "google.golang.org/api/gmail/v1"
)

// MIME types considered for the human-readable body.
const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

// ExtractBody locates and decodes a human-readable body from a message
// payload. For multipart messages, parts are scanned in order: the first
// text/plain part with body data wins immediately; if none exists, the
// first text/html part with body data is used as fallback, undecorated.
// Single-part messages carrying body data directly are decoded as-is.
// When no suitable part exists the result is the empty string, not an
// error.
func ExtractBody(payload *gmail.MessagePart) (string, error) {
	if payload == nil {
		return "", nil
	}

	if len(payload.Parts) > 0 {
		htmlData := ""
		for _, part := range payload.Parts {
			if part == nil || part.Body == nil || part.Body.Data == "" {
				continue
			}
			switch part.MimeType {
			case mimeTextPlain:
				return decodeBody(part.Body.Data)
			case mimeTextHTML:
				if htmlData == "" {
					htmlData = part.Body.Data
				}
			}
		}
		if htmlData != "" {
			return decodeBody(htmlData)
		}
		return "", nil
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	return "", nil
}

// decodeBody decodes a base64url body blob into UTF-8 text. Gmail emits
// URL-safe base64, sometimes without padding; standard base64 is accepted
// as a last resort.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
	}
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode body data: %w", err)
	}

	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("decoded body is not valid UTF-8")
	}
	return string(decoded), nil
}
