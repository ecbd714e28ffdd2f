// Package util holds small helpers shared by the configuration and logging
// code: size parsing, header masking and default selection.
package util
