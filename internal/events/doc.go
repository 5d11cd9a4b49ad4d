// Package events defines the domain events published after successful account
// and entry changes, and the publishers that deliver them.
//
// Publishing is fire-and-forget from the caller's point of view: services log
// a failed publish and carry on.
package events
