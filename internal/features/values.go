package features

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NormalizeValues turns decoded JSON values into the raw strings Encode expects.
// Booleans become Yes/No, numbers keep their shortest representation.
func NormalizeValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case bool:
			if x {
				out[k] = "Yes"
			} else {
				out[k] = "No"
			}
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case json.Number:
			out[k] = x.String()
		case int:
			out[k] = strconv.Itoa(x)
		case int64:
			out[k] = strconv.FormatInt(x, 10)
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}
