package console

import (
	"io"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

func historyPath() string {
	configDirs := configdir.New("elfcore", "console")
	cacheDir := configDirs.QueryCacheFolder()
	if err := cacheDir.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cacheDir.Path, "history")
}

func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range Names() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// Repl reads console lines interactively until EOF or quit.
func Repl(c *Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "elf> ",
		HistoryFile:     historyPath(),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return errors.Wrap(err, "readline")
	}
	defer rl.Close()
	c.Writer = rl.Stdout()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.WithStack(err)
		}
		if Run(c, line) == ErrQuit {
			return nil
		}
	}
}
