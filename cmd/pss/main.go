package main

import "pss/cmd/pss/root"

func main() {
	root.Execute()
}
