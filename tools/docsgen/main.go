// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes one markdown reference page per wbctl subcommand, generated
// from the live command definitions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/command"
	"github.com/tfctl/wbctl/internal/version"
)

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type TemplateData struct {
	ID      string
	Short   string
	Usage   string
	Flags   []Flag
	Date    string
	Version string
}

const pageTemplate = `# wbctl {{ .ID }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{ if .Flags }}
## Flags

| Flag | Description | Default |
|---|---|---|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ end }}
---
wbctl {{ .Version }}, {{ .Date }}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}
	folder := filepath.Join(os.Args[1], "commands")

	if err := generate(folder, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generate renders a page for every subcommand into folder, logging each
// file name to log.
func generate(folder string, log io.Writer) error {
	app, err := command.InitApp(context.Background(), []string{"wbctl"})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	tmpl := template.Must(template.New("page").Parse(pageTemplate))
	for _, cmd := range app.Commands {
		path := filepath.Join(folder, cmd.Name+".md")
		fmt.Fprintln(log, "Generating", path)

		file, err := os.Create(path)
		if err != nil {
			return err
		}
		err = tmpl.Execute(file, pageData(cmd))
		file.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func pageData(cmd *cli.Command) TemplateData {
	usage := cmd.UsageText
	if usage == "" {
		usage = "wbctl " + cmd.Name
	}

	return TemplateData{
		ID:      cmd.Name,
		Short:   cmd.Usage,
		Usage:   usage,
		Flags:   flags(cmd),
		Date:    time.Now().Format("January 2, 2006"),
		Version: version.String(),
	}
}

// flags documents cmd's flags, in their (sorted) declaration order.
func flags(cmd *cli.Command) []Flag {
	var out []Flag
	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if dg, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = dg.GetUsage()
			if dg.TakesValue() {
				flag.Default = dg.GetDefaultText()
			}
		}
		out = append(out, flag)
	}
	return out
}
