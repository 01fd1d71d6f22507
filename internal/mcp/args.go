package mcp

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// argumentGetter is satisfied by mcp.CallToolRequest.
type argumentGetter interface {
	GetArguments() map[string]any
}

// bindArguments decodes tool arguments into target using its json tags.
// Some clients send every parameter as a string, including JSON-encoded
// arrays and booleans, so strings are coerced to the target field type.
func bindArguments[T any](request argumentGetter, target *T) error {
	jsonStringHook := func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return data, nil
		}

		switch to.Kind() {
		case reflect.Slice:
			if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
				slicePtr := reflect.New(to)
				if err := json.Unmarshal([]byte(raw), slicePtr.Interface()); err == nil {
					return slicePtr.Elem().Interface(), nil
				}
			}
			// A bare string stands for a one-element list.
			return []string{raw}, nil
		case reflect.Bool:
			if raw == "true" || raw == "false" {
				return raw == "true", nil
			}
		}
		return data, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       jsonStringHook,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(request.GetArguments())
}
