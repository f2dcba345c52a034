// Package logger wraps zap with:
//   - a global sugared logger using a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - leveled helpers (Infof, WarnKV, ErrorKV, etc.).
//
// Services receive a context and log through it, so every line carries the
// name and fields of the component that produced it.
package logger
