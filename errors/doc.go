// Package errors defines the error taxonomy shared by the mapping engine.
//
// Every public operation of the rest client yields either a result or a
// single *AppError whose Code tells what went wrong: the operation was not
// mapped, the transport failed, the response could not be decoded, or the
// server answered with a not-found, bad-request, client, server or
// unexpected status.
package errors
