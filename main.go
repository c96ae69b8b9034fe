package main

import "anti-theft-gps-tracker/internal/cli"

func main() {
	cli.Execute()
}
