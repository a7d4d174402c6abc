// Command folio opens the terminal portfolio.
package main

import "github.com/diogo/folio/internal/commands"

func main() {
	commands.Execute()
}
