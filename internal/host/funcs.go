package host

// CallIf invokes fn when cond is true and fn is non-nil, returning whether
// it ran.
func CallIf(cond bool, fn func()) bool {
	if !cond || fn == nil {
		return false
	}
	fn()
	return true
}
