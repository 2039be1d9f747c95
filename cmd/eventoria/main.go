// Command eventoria runs maintenance tasks against the marketplace database.
package main

func main() {
	Execute()
}
