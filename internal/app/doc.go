// Package app provides the interactive contactbook terminal client.
//
// It wires configuration, storage, the credential and contact services and a
// read-eval-print loop. Typical flow: register or log in, then manage the
// account's contacts with list, add, edit and delete, optionally exporting
// them to object storage.
//
// A background liveness monitor probes the database; when the connection is
// lost Run returns ErrConnectionLost and the binary exits with a failure code.
package app
