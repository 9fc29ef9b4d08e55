package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var completionsCommandDef = &cli.Command{
	Name:      "completions",
	Usage:     "Print a shell completion script",
	ArgsUsage: "<bash|elvish|fish|powershell|zsh>",
	Action:    completionsCommand,
}

func completionsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale completions <bash|elvish|fish|powershell|zsh>")
	}
	script, ok := completionScripts[c.Args().First()]
	if !ok {
		return fmt.Errorf("unsupported shell %q", c.Args().First())
	}
	fmt.Print(script)
	return nil
}

// completionScripts are minimal, hand-written completions that complete
// only the top-level subcommand names; none of this CLI's flags take
// enough structure (file globs, enumerated IDs) to be worth generating
// dynamically.
var completionScripts = map[string]string{
	"bash": `_crosslocale_completions() {
    local cur cmds
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmds="scan create-project convert import export status dump-scan dump-project mass-json-format completions"
    COMPREPLY=($(compgen -W "$cmds" -- "$cur"))
}
complete -F _crosslocale_completions crosslocale
`,
	"zsh": `#compdef crosslocale
_crosslocale() {
    local -a cmds
    cmds=(scan create-project convert import export status dump-scan dump-project mass-json-format completions)
    _describe 'command' cmds
}
_crosslocale
`,
	"fish": `complete -c crosslocale -f -a "scan create-project convert import export status dump-scan dump-project mass-json-format completions"
`,
	"elvish": `set edit:completion:arg-completer[crosslocale] = {|@words|
    put scan create-project convert import export status dump-scan dump-project mass-json-format completions
}
`,
	"powershell": `Register-ArgumentCompleter -Native -CommandName crosslocale -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @('scan','create-project','convert','import','export','status','dump-scan','dump-project','mass-json-format','completions') |
        Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }
}
`,
}
