package main

import "github.com/helpdesk-tools/jira-incident-importer/cmd"

func main() {
	cmd.Execute()
}
