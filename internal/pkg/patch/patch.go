package patch

// Coalesce resolves an optional field against its current value:
// the pointed-to value when set, fallback otherwise.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
