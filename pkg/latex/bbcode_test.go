package latex_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/latex"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

func translateString(t *testing.T, cfg *config.Config, input string) (string, error) {
	t.Helper()

	tr, err := latex.NewTranslator(cfg)
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), source.FromString("test.tex", input))
	return string(out), err
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", `\textbf{hello}`, `[b]hello[/b]`},
		{"inline math", `$x^2$`, `[tex]x^2[/tex]`},
		{"display dollars", `$$x^2$$`, `[tex]\displaystyle x^2[/tex]`},
		{"display brackets", `\[ a+b \]`, `[tex]\displaystyle a+b[/tex]`},
		{"inline parens", `\(a\)`, `[tex]a[/tex]`},
		{"escaped dollar in math", `$a\$b$`, `[tex]a\$b[/tex]`},
		{"balanced braces in math", `$\frac{a}{b}$`, `[tex]\frac{a}{b}[/tex]`},
		{"escaped braces in math", `$\{x\}$`, `[tex]\{x\}[/tex]`},
		{"nested spans", `\textbf{a \textit{b}}`, `[b]a [i]b[/i][/b]`},
		{"emph and underline", `\emph{x} \underline{y}`, `[i]x[/i] [u]y[/u]`},
		{"monospace", `\texttt{go run}`, `[font=monospace]go run[/font]`},
		{"section", `\section{Intro}`, `[size=150][b]Intro[/b][/size]`},
		{"starred section", `\section*{Intro}`, `[size=150][b]Intro[/b][/size]`},
		{"href", `\href{https://go.dev}{Go}`, `[url=https://go.dev]Go[/url]`},
		{"url", `\url{https://go.dev}`, `[url]https://go.dev[/url]`},
		{"color", `\textcolor{red}{warn}`, `[color=red]warn[/color]`},
		{"footnote", `x\footnote{y}`, `x [size=85](y)[/size]`},
		{"escapes", `50\% \$5 \& \#1 \_x \{\}`, `50% $5 & #1 _x {}`},
		{"tilde", `a~b`, `a b`},
		{"line break", `line\\next`, "line\nnext"},
		{"line break with spacing", `line\\[2mm]next`, "line\nnext"},
		{"par", `a\par b`, "a\n\nb"},
		{"comment dropped", "a % note\nb", "a b"},
		{"full line comment", "x\n% c\ny", "x\ny"},
		{"unknown command passes through", `\foo{bar} baz`, `\foo{bar} baz`},
		{"plain group", `{a}`, `{a}`},
		{"verb", `\verb|a{b|`, `[font=monospace]a{b[/font]`},
		{
			"itemize",
			"\\begin{itemize}\n\\item one\n\\item two\n\\end{itemize}",
			"[list]\n[*]one\n[*]two\n[/list]",
		},
		{
			"enumerate",
			"\\begin{enumerate}\\item a\\end{enumerate}",
			"[list=1][*]a[/list]",
		},
		{
			"enumerate label option",
			`\begin{enumerate}[a)]\item x\end{enumerate}`,
			`[list=1][*]x[/list]`,
		},
		{
			"description labels",
			`\begin{description}\item[Go] fast\end{description}`,
			`[list][*][b]Go[/b] fast[/list]`,
		},
		{"quote", `\begin{quote}hi\end{quote}`, `[quote]hi[/quote]`},
		{"center", `\begin{center}x\end{center}`, `[center]x[/center]`},
		{
			"verbatim is raw",
			`\begin{verbatim}$x$ \textbf{y}\end{verbatim}`,
			`[code]$x$ \textbf{y}[/code]`,
		},
		{
			"lstlisting drops options",
			`\begin{lstlisting}[language=Go]x := 1\end{lstlisting}`,
			`[code]x := 1[/code]`,
		},
		{"comment environment", `a\begin{comment}hidden\end{comment}b`, `ab`},
		{
			"equation",
			`\begin{equation}E=mc^2\end{equation}`,
			`[tex]\displaystyle E=mc^2[/tex]`,
		},
		{
			"align keeps environment",
			`\begin{align}a&=b\end{align}`,
			`[tex]\displaystyle \begin{align*}a&=b\end{align*}[/tex]`,
		},
		{
			"document wrapper",
			"\\documentclass{article}\n\\begin{document}\nHi\n\\end{document}",
			"\n\nHi\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := translateString(t, nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateIdentity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Hello, world.",
		"Second line [b]already bbcode[/b] kept.\n\nParagraph two.",
		"unicode: héllo ✓ 世界\r\n",
	}

	for _, input := range inputs {
		got, err := translateString(t, nil, input)
		require.NoError(t, err)
		assert.Equal(t, input, got)
	}
}

func TestTranslateMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		line      int
		column    int
		construct string
	}{
		{"stray brace", "a}", 1, 2, "}"},
		{"stray brace later line", "ok\n\nbad }", 3, 5, "}"},
		{"unterminated inline math", "$x", 1, 1, "$"},
		{"unterminated display math", "ab $$x$", 1, 4, "$$"},
		{"unterminated bracket math", `\[x`, 1, 1, `\[`},
		{"unclosed environment", "\\begin{itemize}\n\\item a", 1, 1, `\begin{itemize}`},
		{"mismatched end", `\begin{itemize}x\end{enumerate}`, 1, 17, `\end{enumerate}`},
		{"end without begin", `x\end{quote}`, 1, 2, `\end{quote}`},
		{"unclosed span", `\textbf{a`, 1, 1, `\textbf{`},
		{"end inside group", `\begin{center}{\end{center}}`, 1, 16, `\end{center}`},
		{"brace closing environment", `\begin{center}}`, 1, 15, "}"},
		{"missing content group", `\textbf x`, 1, 9, `\textbf`},
		{"missing parameter", `\url x`, 1, 1, `\url`},
		{"unterminated parameter", `\url{x`, 1, 5, "{"},
		{"unclosed verbatim", `\begin{verbatim}x`, 1, 1, `\begin{verbatim}`},
		{"unterminated verb", `\verb|abc`, 1, 1, `\verb`},
		{"begin without name", `\begin x`, 1, 1, `\begin`},
		{"stray brace in inline math", `$x}$`, 1, 3, "}"},
		{"unclosed brace in inline math", `$\frac{a}{b$`, 1, 10, "{"},
		{"span closed inside math", `\textbf{a $b} c$ d}`, 1, 13, "}"},
		{"stray brace in display brackets", `\[a}\]`, 1, 4, "}"},
		{"stray brace in equation", `\begin{equation}a}\end{equation}`, 1, 18, "}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := translateString(t, nil, tt.input)
			require.Error(t, err)
			assert.Empty(t, out)
			require.ErrorIs(t, err, translate.ErrMalformedInput)

			var malformed *translate.MalformedInputError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, "test.tex", malformed.Path)
			assert.Equal(t, tt.line, malformed.Line, "line")
			assert.Equal(t, tt.column, malformed.Column, "column")
			assert.Equal(t, tt.construct, malformed.Construct)
		})
	}
}

func TestTranslateUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		construct string
	}{
		{"cite", `see \cite{knuth}`, `\cite`},
		{"includegraphics", `\includegraphics[width=2cm]{a.png}`, `\includegraphics`},
		{"tabular", `\begin{tabular}{cc}a&b\end{tabular}`, `\begin{tabular}`},
	}

	for _, tt := range tests {
		t.Run(tt.name+" strict", func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Strict = true

			_, err := translateString(t, cfg, tt.input)
			require.ErrorIs(t, err, translate.ErrUnsupportedConstruct)

			var unsupported *translate.UnsupportedConstructError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.construct, unsupported.Construct)
		})

		t.Run(tt.name+" lenient", func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			ctx := logging.WithLogger(context.Background(), logging.NewWriter(&logs, "warn"))

			tr, err := latex.NewTranslator(nil)
			require.NoError(t, err)

			out, err := tr.Translate(ctx, source.FromString("in.tex", tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(out))
			assert.Contains(t, logs.String(), strings.TrimPrefix(tt.construct, `\`))
		})
	}
}

func TestTranslateConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.BBCode.InlineMath = "[math]{body}[/math]"
	cfg.BBCode.KeepComments = true
	cfg.BBCode.Commands = map[string]config.CommandConfig{
		`\textbf`: {Content: true, Open: "[strong]", Close: "[/strong]"},
		"abbr":    {Params: 1, Content: true, Open: "[abbr={1}]", Close: "[/abbr]"},
	}
	cfg.BBCode.Environments = map[string]config.EnvironmentConfig{
		"theorem": {Open: "[quote=Theorem]", Close: "[/quote]"},
		"raw":     {Open: "<", Close: ">", Raw: true},
	}

	got, err := translateString(t, cfg,
		"\\textbf{a} $x$ \\abbr{HTML}{markup} % kept\n\\begin{theorem}T\\end{theorem}\\begin{raw}\\x{\\end{raw}")
	require.NoError(t, err)
	assert.Equal(t,
		"[strong]a[/strong] [math]x[/math] [abbr=HTML]markup[/abbr] % kept\n[quote=Theorem]T[/quote]<\\x{>",
		got)
}

func TestNewTranslatorRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.BBCode.Commands = map[string]config.CommandConfig{"bad": {Params: -1}}

	_, err := latex.NewTranslator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "params")
}

func TestTranslateDeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 100000
	input := strings.Repeat(`\textbf{`, depth) + "x" + strings.Repeat("}", depth)

	got, err := translateString(t, nil, input)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("[b]", depth)+"x"+strings.Repeat("[/b]", depth), got)
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, err := latex.NewTranslator(nil)
	require.NoError(t, err)

	_, err = tr.Translate(ctx, source.FromString("x.tex", "a"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistered(t *testing.T) {
	t.Parallel()

	reg, ok := translate.DefaultRegistry.Resolve("latex2bbcode")
	require.True(t, ok)
	assert.Equal(t, translate.DialectLaTeXBBCode, reg.Dialect)

	out, err := translate.Run(context.Background(), translate.DialectLaTeXBBCode, nil,
		source.FromString("x.tex", `\textit{ok}`))
	require.NoError(t, err)
	assert.Equal(t, "[i]ok[/i]", string(out))
}
