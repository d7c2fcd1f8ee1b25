// notifyctl prepares and sends notifications from the command line.
//
// Usage:
//
//	notifyctl preview -f draft.yaml
//	notifyctl send -f draft.yaml
//	notifyctl category create --name Volunteers --contacts 1,2,3
//	notifyctl category sync 4 --contacts 1,3
//	notifyctl status 5b0c7a4e-...
//
// Settings come from the environment (and .env): DIRECTORY_*, DELIVERY_*,
// MESSAGING_*, POSTMARK_*, APP_ENV and LOG_LEVEL.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
