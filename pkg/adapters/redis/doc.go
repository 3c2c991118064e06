// Package redis coordinates kiosk replicas through Redis: a leader lock so a
// show rotates on exactly one replica, and a pub/sub bus that fans the
// leader's rendering commands out to every replica's browsers.
package redis
