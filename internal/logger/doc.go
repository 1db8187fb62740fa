// Package logger wraps a zap SugaredLogger shared by the whole application.
// Helpers take a context first: a logger stored with ToContext or WithKV wins
// over the global one, so request-scoped fields follow the call chain.
package logger
