package posting

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/teranos/recruitiq/errors"
)

// keyAliases maps alternative field names seen in scraper output and
// hand-written import files onto the canonical names
var keyAliases = map[string]string{
	"description": FieldJobDescription,
	"job_url":     FieldURL,
	"company":     FieldCompanyName,
	"platform":    FieldSourcePlatform,
	"source":      FieldSourcePlatform,
	"currency":    FieldSalaryCurrency,
}

// DecodeCandidate converts an untyped record into a Candidate.
// Numeric strings are coerced ("100000" -> 100000); posted_date accepts
// RFC 3339 or anything ParseDate understands. Booleans are never numbers and
// numbers are never text. Decoding failures are returned as *ValidationError.
func DecodeCandidate(raw map[string]interface{}, now time.Time) (Candidate, error) {
	var c Candidate

	normalized := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		key := strings.ToLower(strings.TrimSpace(k))
		if alias, ok := keyAliases[key]; ok {
			if _, exists := raw[alias]; exists {
				continue
			}
			key = alias
		}
		if isAbsent(v) {
			continue
		}
		normalized[key] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(strictScalarHook, postedDateHook(now)),
	})
	if err != nil {
		return Candidate{}, errors.Wrap(err, "failed to create candidate decoder")
	}
	if err := decoder.Decode(normalized); err != nil {
		return Candidate{}, &ValidationError{Field: "record", Reason: err.Error()}
	}
	return c, nil
}

func isAbsent(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

var timeType = reflect.TypeOf(time.Time{})

// strictScalarHook narrows weak typing to string-to-number coercion:
// true must not become salary 1 and 12 must not become the title "12"
func strictScalarHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	for to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	switch {
	case from.Kind() == reflect.Bool && to.Kind() != reflect.Bool:
		return nil, errors.Newf("expected %s, got boolean %v", to.Kind(), data)
	case isNumberKind(from.Kind()) && to.Kind() == reflect.String:
		return nil, errors.Newf("expected text, got number %v", data)
	}
	return data, nil
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func postedDateHook(now time.Time) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != timeType {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		if t, ok := ParseDate(s, now); ok {
			return t, nil
		}
		return nil, errors.Newf("unrecognized date %q", s)
	}
}
