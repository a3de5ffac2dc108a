// Package apperr defines the error taxonomy shared by all stores.
//
// Every store translates backend failures and domain outcomes into one of the
// Kind values (bad request, not found, conflict, forbidden, needs migration,
// backend). Handlers render the kind as an HTTP status via StatusCode and the
// caller-safe message via PublicMessage; raw backend causes never leave the
// process except through the logs.
package apperr
