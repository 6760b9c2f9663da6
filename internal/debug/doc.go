// Package debug provides the optional file-backed debug logger.
//
// When the VISIBILITY_DEBUG environment variable is set to a file path, debug
// records are appended to that file as JSON through zap. Otherwise Logger
// returns a no-op logger.
package debug
