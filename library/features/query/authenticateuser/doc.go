// Package authenticateuser verifies login credentials for the credential gate.
package authenticateuser
