// Command ls-starfield draws an animated star field with shooting stars in
// the terminal or in a desktop window.
package main

import (
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	Execute()
}
