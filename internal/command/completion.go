// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/meta"
)

const bashCompletionScript = `# bash completion for wbctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_wbctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "check diff highlight import stats versions completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--store -S --region --profile --endpoint --limit -l --passphrase -p"
    local common="--attrs -a --color -c --filter -f --output -o --padding --schema --sort -s --titles -t"

    case "$cmd" in
        check)
            local opts="$store --locale --quiet -q"
            ;;
        diff)
            local opts="$store $common --locale"
            ;;
        highlight)
            local opts="$store --added --modified --deleted --out -O --revert"
            ;;
        import)
            local opts="--encrypt -e --out -O --passphrase -p"
            ;;
        stats)
            local opts="$store $common --brief -b --locale"
            ;;
        versions)
            local opts="$store $common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--store" || "$prev" == "-S" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Workbook files for highlight and import, version specs otherwise.
    case "$cmd" in
        highlight|import)
            COMPREPLY=( $(compgen -f -X '!*.xlsx' -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -W "+ SV~0 SV~1" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _wbctl wbctl
`

const zshCompletionScript = `#compdef wbctl

_wbctl() {
  local -a cmds
  cmds=(
    'check:exit 1 if two snapshot versions differ'
    'diff:list the cell changes between two snapshot versions'
    'highlight:paint the changed cells of a workbook'
    'import:store an xlsx workbook as a new snapshot version'
    'stats:summarize the changes between two snapshot versions'
    'versions:list the snapshot versions of a store'
    'completion:generate shell completion script'
  )

  local -a store
  store=(
  '(-S --store)'{-S,--store}'[snapshot store]:store:_files'
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[custom S3 endpoint]:url'
  '(-l --limit)'{-l,--limit}'[limit versions]:limit'
  '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]:passphrase'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '--schema[dump schema]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'wbctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    check)
      _arguments -C \
        $store \
        '--locale[summary language]:locale' \
        '(-q --quiet)'{-q,--quiet}'[do not print the summary]' \
        '*::version:(+ SV~0 SV~1)'
      ;;
    diff)
      _arguments -C \
        $store \
        $common \
        '--locale[summary language]:locale' \
        '*::version:(+ SV~0 SV~1)'
      ;;
    highlight)
      _arguments -C \
        $store \
        '--added[added cell color]:color' \
        '--modified[modified cell color]:color' \
        '--deleted[deleted cell color]:color' \
        '(-O --out)'{-O,--out}'[output workbook]:file:_files' \
        '--revert[restore styles before saving]' \
        '1:workbook:_files -g "*.xlsx"' \
        '*::version:(+ SV~0 SV~1)'
      ;;
    import)
      _arguments -C \
        '(-e --encrypt)'{-e,--encrypt}'[write an encrypted snapshot]' \
        '(-O --out)'{-O,--out}'[snapshot file]:file:_files' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]:passphrase' \
        '1:workbook:_files -g "*.xlsx"'
      ;;
    stats)
      _arguments -C \
        $store \
        $common \
        '(-b --brief)'{-b,--brief}'[summary line only]' \
        '--locale[summary language]:locale' \
        '*::version:(+ SV~0 SV~1)'
      ;;
    versions)
      _arguments -C \
        $store \
        $common
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _wbctl wbctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: wbctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "wbctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
