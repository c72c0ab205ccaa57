// Command traitstack extracts biological trait measurements from museum
// specimen text records.
package main

import "github.com/fieldtraits/traitstack/cmd/traitstack"

func main() {
	cmd.Execute()
}
