package mg2

// safeMake allocates a slice of n elements, converting a runtime
// allocation panic into an OutOfMemory error instead of crashing the
// process. This is the pipeline's only recover: every other error
// path returns normally.
func safeMake[T any](n int, operation string) (out []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = outOfMemory(operation, "allocation failed")
		}
	}()
	out = make([]T, n)
	return out, nil
}
