package upstream

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// EncodeQuery converts params into query values using the bracketed key
// convention the upstream parses: nested objects become key[sub]=v, scalar
// arrays become key[]=v, and arrays of objects become key[i][sub]=v.
// Nil values are omitted.
func EncodeQuery(params map[string]any) url.Values {
	values := url.Values{}
	for key, value := range params {
		appendValue(values, key, value)
	}
	return values
}

func appendValue(values url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case map[string]any:
		for sub, nested := range v {
			appendValue(values, fmt.Sprintf("%s[%s]", key, sub), nested)
		}
	case []any:
		for i, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				appendValue(values, fmt.Sprintf("%s[%d]", key, i), item)
			default:
				appendValue(values, key+"[]", item)
			}
		}
	default:
		values.Add(key, formatScalar(v))
	}
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
