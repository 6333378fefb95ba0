// Package registeruser registers API users for the credential gate.
package registeruser
