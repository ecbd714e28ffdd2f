package mapping

// Entity is the caller's structured value: field names to primitive or
// nested values.
type Entity map[string]any

// Lookup returns the value of field. A nil value counts as absent.
func (e Entity) Lookup(field string) (any, bool) {
	v, ok := e[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
