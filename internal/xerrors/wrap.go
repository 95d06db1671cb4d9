package xerrors

// Unwrap flattens errors built with errors.Join, recursively, so each cause can be logged on its own.
func Unwrap(err error) []error {
	if err == nil {
		return nil
	}
	u, ok := err.(interface {
		Unwrap() []error
	})
	if !ok {
		return []error{err}
	}

	var errs []error
	for _, e := range u.Unwrap() {
		errs = append(errs, Unwrap(e)...)
	}
	return errs
}
