// Command surfacectl replays input scripts against a scene and serves a
// live scene over a websocket.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
