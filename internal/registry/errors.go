package registry

import "errors"

// NoActiveTenantError is returned when the current tenant's cart is
// requested before any tenant context has been established.
//
// This is a programmer error, not a recoverable condition: silently
// defaulting to some tenant would risk writing cart state into the wrong
// namespace. Callers must establish context with SetCurrentTenant first.
type NoActiveTenantError struct{}

// Error implements the error interface.
func (e *NoActiveTenantError) Error() string {
	return "no active tenant: SetCurrentTenant must be called before CurrentCart"
}

// IsNoActiveTenant returns true if the error is a missing-tenant-context
// error. Uses errors.As to handle wrapped errors.
func IsNoActiveTenant(err error) bool {
	var e *NoActiveTenantError
	return errors.As(err, &e)
}
