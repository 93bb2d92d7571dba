// Package main provides the fuser CLI.
package main

func main() {
	Execute()
}
