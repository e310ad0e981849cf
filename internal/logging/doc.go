// Package logging provides a simple leveled logging interface for spinframe.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions, including skipped frames
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable (or
// DEBUG=true) and can be overridden at runtime with SetLevel. Log lines go to
// stderr so that progress and summary output on stdout stay readable.
package logging
