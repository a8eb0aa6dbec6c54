package main

import (
	"github.com/lunixbochs/elfcore/go/cmd"

	_ "github.com/lunixbochs/elfcore/go/cmd/check"
	_ "github.com/lunixbochs/elfcore/go/cmd/console"
	_ "github.com/lunixbochs/elfcore/go/cmd/info"
	_ "github.com/lunixbochs/elfcore/go/cmd/link"
	_ "github.com/lunixbochs/elfcore/go/cmd/load"
)

func main() { cmd.Main() }
