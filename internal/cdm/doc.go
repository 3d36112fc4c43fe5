// Package cdm provides a small typed client for the Rubrik CDM REST API.
//
// Only the endpoints needed to provision and bracket snapshots on a
// Managed Volume are covered:
//   - Managed volume create, list (by name) and get
//   - Begin/end snapshot on a managed volume
//   - Cluster identity (used as a connectivity check)
//
// Authentication:
//
// The cluster accepts either an API token or a username/password pair. The
// choice is made once, when configuration is loaded, and carried around as
// an Auth value:
//
//	auth := cdm.BearerAuth{Token: token}
//	client, err := cdm.NewClient(cdm.Options{Host: "10.0.0.10", Auth: auth})
//	if err != nil {
//	    return err
//	}
//
//	id, err := client.ManagedVolumeID(ctx, "oradb1")
//
// Errors:
//
// Non-2xx responses are returned as *APIError. Descriptors that are missing
// required fields are rejected with an error that matches ErrInvalidVolume.
//
// Consumer-Side Interfaces:
//
// This package does not define interfaces. Consumers (internal/provision,
// cmd/mvctl) declare the subset of *Client methods they need.
package cdm
