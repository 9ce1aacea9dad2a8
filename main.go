package main

import (
	"os"

	"github.com/JerryHue/emojicode/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
