package core

// Extractor derives a declared signature from a callable.
type Extractor interface {
	Name() string
	Extract(fn any) (Signature, error)
}
