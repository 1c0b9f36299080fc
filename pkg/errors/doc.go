// Package errors provides structured error types for the prereq run
// lifecycle. Each error carries a classification code (validation,
// fatal-probe, delivery, internal) that the CLI boundary maps to exit
// behavior, plus optional cause and context for debugging.
package errors
