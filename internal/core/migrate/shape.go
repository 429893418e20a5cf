package migrate

// shape is the closed set of element forms found in historical roster blobs.
type shape int

const (
	// shapeOther covers null, numbers, booleans and nested arrays. These carry
	// no usable fields, so every field falls back to its default.
	shapeOther shape = iota
	// shapeString is the pre-object era: a record stored as one text line.
	shapeString
	// shapeObject is a partial or fully canonical object.
	shapeObject
)

// entry is a classified raw element.
type entry struct {
	shape  shape
	text   string         // shapeString only
	fields map[string]any // shapeObject only
}

func classify(v any) entry {
	switch t := v.(type) {
	case string:
		return entry{shape: shapeString, text: t}
	case map[string]any:
		return entry{shape: shapeObject, fields: t}
	}
	return entry{shape: shapeOther}
}

// str returns the named field when it is a string.
func (e entry) str(key string) (string, bool) {
	if e.shape != shapeObject {
		return "", false
	}
	s, ok := e.fields[key].(string)
	return s, ok
}

// strOr returns the named string field or def.
func (e entry) strOr(key, def string) string {
	if s, ok := e.str(key); ok {
		return s
	}
	return def
}

// list returns the named field when it is an array.
func (e entry) list(key string) ([]any, bool) {
	if e.shape != shapeObject {
		return nil, false
	}
	l, ok := e.fields[key].([]any)
	return l, ok
}

// number returns the named field when it is numeric.
func (e entry) number(key string) (float64, bool) {
	if e.shape != shapeObject {
		return 0, false
	}
	switch n := e.fields[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
