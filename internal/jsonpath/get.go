package jsonpath

// Get reads the value at p inside doc.
//
// found is false when any step of the traversal cannot be taken: a missing
// member, an out of range index, a null, or a container of the wrong kind.
// These cases are not distinguished. The empty path returns doc itself.
func Get(doc any, p Path) (value any, found bool) {
	current := doc
	for _, segment := range p {
		if i, ok := segment.Index(); ok {
			array, isArray := current.([]any)
			if !isArray || i >= len(array) {
				return nil, false
			}
			current = array[i]
			continue
		}

		key, _ := segment.Key()
		object, isObject := current.(map[string]any)
		if !isObject {
			return nil, false
		}
		if current, found = object[key]; !found {
			return nil, false
		}
	}
	return current, true
}
