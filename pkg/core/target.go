package core

// Target is a callable under check: a function of exactly one parameter
// and one result. When Signature is set it is taken as the declared
// contract; otherwise the checker extracts one from the function's
// runtime type.
type Target struct {
	Name      string
	Func      any
	Signature *Signature
}
