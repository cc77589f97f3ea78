// Package identity defines the result vocabulary shared by the role and
// account directories. Mutations either succeed or fail with a coded,
// caller-facing error; infrastructure failures travel on the error channel
// instead and never appear inside a Result.
package identity

// Error is a caller-facing failure description attached to a Result.
type Error struct {
	Code        string
	Description string
}

// Result reports the outcome of a create/update/delete operation.
// The zero value is a failed result with no errors attached.
type Result struct {
	Succeeded bool
	Errors    []Error
}

// Success returns a succeeded Result.
func Success() Result {
	return Result{Succeeded: true}
}

// Failed returns a Result carrying the given errors.
func Failed(errs ...Error) Result {
	return Result{Errors: errs}
}
