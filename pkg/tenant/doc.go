// Package tenant talks to the Meetwire hosted-tenant API.
//
// Managed (SaaS) deployments host rooms on behalf of a tenant. Before
// connecting to such a room the driver fetches the tenant metadata for
// the room and, when no token is already present in process-wide state,
// requests a tenant-issued JWT from the tenant's token endpoint.
//
// Errors from this package propagate uncaught to the caller of the
// top-level connect operation; there is no local recovery.
package tenant
