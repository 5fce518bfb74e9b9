package cmd

import "fmt"

// wrapFatalln reports a fatal error with its cause and exits
func wrapFatalln(msg string, err error) {
	if err != nil {
		logFatalln(fmt.Sprintf("%s: %v", msg, err))
		return
	}
	logFatalln(msg)
}
