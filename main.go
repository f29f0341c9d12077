package main

import "folder-ingest/cmd"

func main() {
	cmd.Execute()
}
