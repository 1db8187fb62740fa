// Package header composes outgoing request headers.
// A Map is a flat name-to-value mapping whose names compare case-insensitively.
// Merge folds a lower-priority Map into a higher-priority one, so stacking merges
// yields a strict precedence order between header sources.
package header
