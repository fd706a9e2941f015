// Package dummyjson is a small client for the DummyJSON auth sandbox.
//
// Login posts {username, password} to /auth/login. AddUser posts a new
// user to /users/add; the sandbox echoes it back with an id but never stores
// it. Failure replies become *APIError, whose text is the sandbox's message
// field when present.
package dummyjson
