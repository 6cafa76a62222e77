// Package middleware provides the Gin middleware in front of the command API.
package middleware
