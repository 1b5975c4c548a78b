package curl

import (
	"regexp"
	"strings"

	"github.com/studiowebux/curlfmt/internal/types"
)

// DefaultMethod is used when the command carries neither a method flag nor data
const DefaultMethod = "GET"

// DataMethod is inferred when a data flag is present without an explicit method
const DataMethod = "POST"

var (
	// Only single-quoted http(s) URLs are recognized
	urlPattern = regexp.MustCompile(`'(https?://[^']+)'`)

	// -X PUT or --request PUT, token returned verbatim
	methodPattern = regexp.MustCompile(`(?:-X|--request)\s+(\w+)`)

	// A data flag must start its own token, "x-device-id" is not "-d".
	// -d takes its value attached as well (-d@body.json, -da=1).
	dataFlagPattern = regexp.MustCompile(`(?:^|\s)(?:-d|--data(?:-raw|-binary|-urlencode|-ascii)?(?:[\s='"@]|$))`)
)

// payloadRule is one flag/quote combination that can carry a request body
type payloadRule struct {
	flag  string
	quote byte
	re    *regexp.Regexp
}

func newPayloadRule(flag string, quote byte) payloadRule {
	q := regexp.QuoteMeta(string(quote))
	return payloadRule{
		flag:  flag,
		quote: quote,
		re:    regexp.MustCompile(regexp.QuoteMeta(flag) + `\s+` + q + `([^` + q + `]*)` + q),
	}
}

// payloadRules are tried in order, the first match wins
var payloadRules = []payloadRule{
	newPayloadRule("--data-raw", '\''),
	newPayloadRule("--data-raw", '"'),
	newPayloadRule("-d", '\''),
	newPayloadRule("-d", '"'),
	newPayloadRule("--data", '\''),
	newPayloadRule("--data", '"'),
}

// IsCurlRequest checks if the text starts with "curl" once surrounding whitespace is removed
func IsCurlRequest(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "curl")
}

// ExtractRequestURL returns the first single-quoted http(s) URL, or "" if none
func ExtractRequestURL(command string) string {
	if matches := urlPattern.FindStringSubmatch(command); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// ExtractRequestMethod resolves the HTTP method.
// An explicit -X/--request always wins, then data flags imply POST, then GET.
func ExtractRequestMethod(command string) string {
	if matches := methodPattern.FindStringSubmatch(command); len(matches) > 1 {
		return matches[1]
	}

	if HasDataFlag(command) {
		return DataMethod
	}

	return DefaultMethod
}

// HasDataFlag reports whether any data-carrying flag appears in the command
func HasDataFlag(command string) bool {
	return dataFlagPattern.MatchString(command)
}

// ExtractPayload returns the inner content of the first matching payload rule, or ""
func ExtractPayload(command string) string {
	for _, rule := range payloadRules {
		if matches := rule.re.FindStringSubmatch(command); len(matches) > 1 {
			return matches[1]
		}
	}
	return ""
}

// Parse extracts URL, method and payload without executing anything.
// It never fails: unrecognized parts are simply left empty.
func Parse(command string) types.ParsedRequest {
	return types.ParsedRequest{
		URL:     ExtractRequestURL(command),
		Method:  ExtractRequestMethod(command),
		Payload: ExtractPayload(command),
	}
}
