// Command paydesk is the command-line client for the paydesk backend.
package main

import "github.com/dmitrijs2005/paydesk/cmd/paydesk/cmd"

func main() {
	cmd.Execute()
}
