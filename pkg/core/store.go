package core

// CounterexampleStore persists falsifying inputs between runs so an
// unsafe verdict reproduces deterministically.
type CounterexampleStore interface {
	Get(target string, sig Signature) ([]any, bool)
	Put(target string, sig Signature, input any) error
}
