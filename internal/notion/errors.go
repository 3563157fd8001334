package notion

import "fmt"

// RegistryError wraps a failure of the schema-discovery query. The run
// cannot continue without prefixes, so callers treat it as fatal.
type RegistryError struct {
	Err error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("failed to discover unique id prefixes: %v", e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// ResolverError wraps a transport or auth failure of a page lookup. A page
// that simply does not exist is not a ResolverError.
type ResolverError struct {
	DatabaseID string
	Err        error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("failed to query database %s: %v", e.DatabaseID, e.Err)
}

func (e *ResolverError) Unwrap() error { return e.Err }
