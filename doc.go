/*
Package carousel rotates a fixed list of web pages inside a full-viewport
container, applying a visual transition between consecutive pages on a
fixed timer.

It separates the rotation logic (which slot is visible, when to move on,
which transition to run) from the rendering surface. The host provides a
ports.Surface: the headless memory surface for tests and simulations, or
the kiosk surface in pkg/adapters/http that drives browsers over
Server-Sent Events.

# Concept

A Show owns an ordered list of slots and a timer. Run shows slot 0, then on
every tick advances the index (wrapping) and hands the outgoing and incoming
slots to a named transition from an immutable transition.Registry.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/carousel"
	)

	func main() {
		show, err := carousel.New(
			[]string{"https://example.com/a", "https://example.com/b"},
			carousel.WithInterval(5000),
			carousel.WithTransition("fade"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer show.Close(context.Background())

		if err := show.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
		select {}
	}
*/
package carousel
