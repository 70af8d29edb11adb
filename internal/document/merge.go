package document

// Merge deep-merges updates onto existing and returns the result.
// Neither input is mutated.
//
// Null handling:
//   - update value nil over an object field: the field is removed
//   - update value nil over a primitive or absent field: the field is
//     kept (or created) with an explicit null
//
// Nested objects merge recursively. Lists and every other value are
// replaced wholesale.
func Merge(existing, updates Document) Document {
	return Document(mergeMaps(existing, updates))
}

func mergeMaps(existing, updates map[string]any) map[string]any {
	result := make(map[string]any, len(existing)+len(updates))
	for k, v := range existing {
		result[k] = copyValue(v)
	}

	for key, value := range updates {
		if value == nil {
			if prev, ok := result[key]; ok {
				if _, isObject := asMap(prev); isObject {
					delete(result, key)
					continue
				}
			}
			result[key] = nil
			continue
		}

		if next, ok := asMap(value); ok {
			if prev, exists := result[key]; exists {
				if prevMap, isObject := asMap(prev); isObject {
					result[key] = mergeMaps(prevMap, next)
					continue
				}
			}
		}

		result[key] = copyValue(value)
	}

	return result
}
