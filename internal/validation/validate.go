package validation

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Check walks value against the contract for kind and returns every violation found.
func Check(kind Kind, value any) []Violation {
	shape, ok := Contract(kind)
	if !ok {
		return []Violation{{Reason: fmt.Sprintf("no contract declared for %q", kind)}}
	}

	var out []Violation
	shape.check("", value, &out)
	return out
}

// Validate decodes payload and checks it against the contract for kind. A well-formed payload
// that breaks the contract yields a *Error listing every violation.
func Validate(kind Kind, payload []byte) (any, error) {
	var value any
	if err := sonic.Unmarshal(payload, &value); err != nil {
		return nil, &Error{Kind: kind, Violations: []Violation{{Reason: "payload is not valid JSON: " + err.Error()}}}
	}

	if violations := Check(kind, value); len(violations) > 0 {
		return nil, &Error{Kind: kind, Violations: violations}
	}
	return value, nil
}

// Decode validates payload and then decodes it into T.
func Decode[T any](kind Kind, payload []byte) (T, error) {
	var out T
	if _, err := Validate(kind, payload); err != nil {
		return out, err
	}
	if err := sonic.Unmarshal(payload, &out); err != nil {
		return out, &Error{Kind: kind, Violations: []Violation{{Reason: "decode into typed record: " + err.Error()}}}
	}
	return out, nil
}

// DecodeEach validates every payload of a batch and returns the typed records in input order.
// All violations of all payloads are reported together, prefixed with the payload index.
func DecodeEach[T any](kind Kind, payloads [][]byte) ([]T, error) {
	out := make([]T, len(payloads))
	var violations []Violation
	for i, payload := range payloads {
		v, err := Decode[T](kind, payload)
		if err != nil {
			for _, violation := range Violations(err) {
				violation.Path = fmt.Sprintf("[%d]%s", i, prefixPath(violation.Path))
				violations = append(violations, violation)
			}
			continue
		}
		out[i] = v
	}
	if len(violations) > 0 {
		return nil, &Error{Kind: kind, Violations: violations}
	}
	return out, nil
}

func prefixPath(path string) string {
	if path == "" {
		return ""
	}
	return "." + path
}
