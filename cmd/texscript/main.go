package main

import (
	"os"

	texscript "github.com/edouard-claude/texscript"
	"github.com/edouard-claude/texscript/internal/cli"
	"github.com/edouard-claude/texscript/internal/preset"
)

func main() {
	preset.EmbeddedFS = texscript.EmbeddedPresets
	exitCode := cli.Run(os.Args)
	os.Exit(exitCode)
}
