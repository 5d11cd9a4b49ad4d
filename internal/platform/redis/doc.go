// Package redis publishes domain events to a Redis stream.
package redis
