// Package notion provides a read-only client for the Notion REST API.
//
// The client handles bearer authentication, request throttling (3 req/sec),
// cursor-based pagination for search, database query and block children
// endpoints, and structured API error decoding.
package notion
