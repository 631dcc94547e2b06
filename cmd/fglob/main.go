// Command fglob prints the paths matching glob patterns.
package main

import "github.com/Cyclone1070/fglob/internal/cmd"

func main() {
	cmd.Execute()
}
