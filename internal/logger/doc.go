// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (InfoKV, ErrorKV, etc.).
//
// The encoder and its steps accept a context and extract the logger from it,
// so every diagnostic carries the section and key it is about.
package logger
