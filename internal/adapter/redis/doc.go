// Package redis connects to Redis and fans list change events out over pub/sub.
package redis
