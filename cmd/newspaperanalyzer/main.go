// Package main provides the entry point for the newspaper analyzer CLI.
//
// Usage:
//
//	newspaper-analyzer run
//	newspaper-analyzer check
//	newspaper-analyzer analyze --source "Mitteldeutsche Zeitung" --file today.pdf
package main

func main() {
	Execute()
}
