package jsonl

import "github.com/valyala/fastjson"

// Flatten converts a single JSON value to its CSV cell text.
// Scalars keep their textual form: strings unquoted, numbers exactly as
// written in the source, booleans as true/false, null as the empty string.
// Objects and arrays serialize as compact JSON so nested structures stay
// machine-readable inside the cell.
func Flatten(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeNull:
		return ""
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return string(b)
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	default:
		// Numbers keep their raw source text; objects and arrays marshal
		// without insignificant whitespace.
		return v.String()
	}
}
