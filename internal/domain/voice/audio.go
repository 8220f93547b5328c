// Package voice turns a recorded audio command into a ledger entry:
// parse the audio payload, transcribe it, extract the transaction and
// persist it.
package voice

import (
	"fmt"
	"regexp"
	"strings"
)

// dataURLPattern matches data-URL audio payloads, capturing the MIME
// type and the base64 body. Codec parameters between the MIME type and
// the base64 marker are ignored.
var dataURLPattern = regexp.MustCompile(`^data:([^;]+)(?:;[^,]*)?;base64,(.+)$`)

// whitespacePattern strips line breaks some clients insert into long
// base64 strings.
var whitespacePattern = regexp.MustCompile(`\s+`)

// ParseAudioInput accepts either a raw base64 string or a full data URL
// and returns the clean base64 payload plus the gateway format token.
func ParseAudioInput(input string) (data, format string, err error) {
	// Strip all whitespace up front so line breaks inside the base64
	// body can't keep the data-URL pattern from matching.
	input = whitespacePattern.ReplaceAllString(input, "")
	if input == "" {
		return "", "", fmt.Errorf("empty audio input")
	}

	format = "webm"
	data = input

	if match := dataURLPattern.FindStringSubmatch(input); match != nil {
		format = formatFromMIME(match[1])
		data = match[2]
	}

	if data == "" {
		return "", "", fmt.Errorf("empty audio payload")
	}

	return data, format, nil
}

func formatFromMIME(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "audio/webm":
		return "webm"
	case "audio/wav", "audio/x-wav":
		return "wav"
	case "audio/mp3", "audio/mpeg":
		return "mp3"
	case "audio/ogg":
		return "ogg"
	default:
		return "webm"
	}
}
