// Package websocket serves the live change feed: connected browsers receive a
// small JSON frame whenever the shared order or selection changes.
package websocket
