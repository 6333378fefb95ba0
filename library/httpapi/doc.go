// Package httpapi exposes the library use cases over HTTP.
//
// Every route except the welcome, health, metrics and login routes requires the static API key
// in the X-API-KEY header and a bearer token issued by POST /login. Domain errors are mapped to
// status codes here and nowhere else, failures are answered with {"detail": "..."}.
package httpapi
