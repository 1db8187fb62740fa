// Package cookie keeps the session cookie jar: one raw cookie string per origin.
// Values are replaced, never merged, and the jar is safe for concurrent use,
// so responses completing in parallel resolve with last-write-wins.
package cookie
