package latex

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/yaklabco/markconv/pkg/config"
)

// commandSpec describes how a LaTeX command maps to BBCode.
type commandSpec struct {
	params      int
	optional    bool
	content     bool
	open        string
	close       string
	openWithOpt string
}

type mathMode int

const (
	mathNone mathMode = iota
	// mathBody emits the body through the display template.
	mathBody
	// mathWrapped keeps a starred \begin..\end around the body.
	mathWrapped
)

// envSpec describes how a LaTeX environment maps to BBCode.
type envSpec struct {
	open  string
	close string
	raw   bool
	drop  bool
	// optional discards a [..] argument after \begin{name}.
	optional bool
	math     mathMode
}

func content(open, closing string) commandSpec {
	return commandSpec{content: true, open: open, close: closing}
}

func literal(text string) commandSpec {
	return commandSpec{open: text}
}

//nolint:gochecknoglobals // Built once and never mutated.
var defaultCommands = sync.OnceValue(func() map[string]commandSpec {
	return map[string]commandSpec{
		"textbf":        content("[b]", "[/b]"),
		"textit":        content("[i]", "[/i]"),
		"emph":          content("[i]", "[/i]"),
		"textsl":        content("[i]", "[/i]"),
		"underline":     content("[u]", "[/u]"),
		"sout":          content("[s]", "[/s]"),
		"texttt":        content("[font=monospace]", "[/font]"),
		"textsc":        content("[size=90]", "[/size]"),
		"textrm":        content("", ""),
		"textup":        content("", ""),
		"textnormal":    content("", ""),
		"mbox":          content("", ""),
		"section":       content("[size=150][b]", "[/b][/size]"),
		"subsection":    content("[size=125][b]", "[/b][/size]"),
		"subsubsection": content("[b]", "[/b]"),
		"paragraph":     content("[b]", "[/b]"),
		"title":         content("[center][size=150][b]", "[/b][/size][/center]"),
		"author":        content("[center][i]", "[/i][/center]"),
		"date":          content("", ""),
		"footnote":      content(" [size=85](", ")[/size]"),
		"textcolor":     {params: 1, content: true, open: "[color={1}]", close: "[/color]"},
		"href":          {params: 1, content: true, open: "[url={1}]", close: "[/url]"},
		"url":           {params: 1, open: "[url]{1}[/url]"},
		"item":          {optional: true, open: "[*]", openWithOpt: "[*][b]{opt}[/b] "},
		"documentclass": {params: 1, optional: true},
		"usepackage":    {params: 1, optional: true},
		"vspace":        {params: 1},
		"hspace":        {params: 1},
		"maketitle":     literal(""),
		"noindent":      literal(""),
		"centering":     literal(""),
		"par":           literal("\n\n"),
		"newline":       literal("\n"),
		"linebreak":     literal("\n"),
		"bigskip":       literal("\n"),
		"medskip":       literal("\n"),
		"smallskip":     literal("\n"),
		"ldots":         literal("..."),
		"dots":          literal("..."),
		"quad":          literal(" "),
		"qquad":         literal("  "),
		"LaTeX":         literal("LaTeX"),
		"TeX":           literal("TeX"),
		",":             literal(" "),
		" ":             literal(" "),
		"verb":          content("[font=monospace]", "[/font]"),
	}
})

//nolint:gochecknoglobals // Built once and never mutated.
var defaultEnvironments = sync.OnceValue(func() map[string]envSpec {
	envs := map[string]envSpec{
		"document":    {},
		"itemize":     {open: "[list]", close: "[/list]", optional: true},
		"enumerate":   {open: "[list=1]", close: "[/list]", optional: true},
		"description": {open: "[list]", close: "[/list]", optional: true},
		"quote":       {open: "[quote]", close: "[/quote]"},
		"quotation":   {open: "[quote]", close: "[/quote]"},
		"center":      {open: "[center]", close: "[/center]"},
		"flushleft":   {},
		"flushright":  {},
		"abstract":    {open: "[quote][b]Abstract.[/b] ", close: "[/quote]"},
		"verbatim":    {open: "[code]", close: "[/code]", raw: true},
		"lstlisting":  {open: "[code]", close: "[/code]", raw: true, optional: true},
		"comment":     {raw: true, drop: true},
		"equation":    {math: mathBody},
		"equation*":   {math: mathBody},
		"displaymath": {math: mathBody},
		"math":        {math: mathBody},
	}
	for _, name := range []string{"align", "gather", "multline", "eqnarray", "flalign"} {
		envs[name] = envSpec{math: mathWrapped}
		envs[name+"*"] = envSpec{math: mathWrapped}
	}
	return envs
})

// Constructs that have no BBCode equivalent. They pass through verbatim
// with a warning, or fail in strict mode.
//
//nolint:gochecknoglobals // Immutable lookup tables.
var (
	unsupportedCommands = map[string]bool{
		"includegraphics":   true,
		"cite":              true,
		"ref":               true,
		"eqref":             true,
		"pageref":           true,
		"label":             true,
		"input":             true,
		"include":           true,
		"newcommand":        true,
		"renewcommand":      true,
		"def":               true,
		"bibliography":      true,
		"bibliographystyle": true,
		"tableofcontents":   true,
	}
	unsupportedEnvironments = map[string]bool{
		"tabular":         true,
		"tabular*":        true,
		"figure":          true,
		"figure*":         true,
		"table":           true,
		"table*":          true,
		"tikzpicture":     true,
		"picture":         true,
		"thebibliography": true,
	}
)

// tables holds the merged command and environment maps for one translator.
type tables struct {
	commands     map[string]commandSpec
	environments map[string]envSpec
}

// buildTables merges configured overrides over the built-in defaults.
// The defaults themselves are never modified.
func buildTables(cfg config.BBCodeConfig) (*tables, error) {
	result := &tables{
		commands:     maps.Clone(defaultCommands()),
		environments: maps.Clone(defaultEnvironments()),
	}

	for name, override := range cfg.Commands {
		name = strings.TrimPrefix(name, `\`)
		if name == "" {
			return nil, fmt.Errorf("bbcode.commands: empty command name")
		}
		if override.Params < 0 {
			return nil, fmt.Errorf("bbcode.commands.%s: params must not be negative", name)
		}
		result.commands[name] = commandSpec{
			params:      override.Params,
			optional:    override.Optional,
			content:     override.Content,
			open:        override.Open,
			close:       override.Close,
			openWithOpt: override.OpenWithOpt,
		}
	}

	for name, override := range cfg.Environments {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("bbcode.environments: empty environment name")
		}
		result.environments[name] = envSpec{
			open:  override.Open,
			close: override.Close,
			raw:   override.Raw,
		}
	}

	return result, nil
}

// command looks up a command, preferring the starred form when present.
func (t *tables) command(name string, star bool) (commandSpec, bool) {
	if star {
		if spec, ok := t.commands[name+"*"]; ok {
			return spec, true
		}
	}
	spec, ok := t.commands[name]
	return spec, ok
}

// expand substitutes {1}..{n} and {opt} in a template.
func expand(template string, params []string, opt string) string {
	if !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, 2*len(params)+2)
	for idx, param := range params {
		pairs = append(pairs, "{"+strconv.Itoa(idx+1)+"}", param)
	}
	pairs = append(pairs, "{opt}", opt)
	return strings.NewReplacer(pairs...).Replace(template)
}

// mathTemplate substitutes {body} in a math template.
func mathTemplate(template, body string) string {
	return strings.ReplaceAll(template, "{body}", body)
}
