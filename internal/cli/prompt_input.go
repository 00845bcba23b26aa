package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
)

// linePrompter asks questions on a plain line-oriented terminal or pipe.
type linePrompter struct {
	in      *lineReader
	out     io.Writer
	aliases map[string]string
}

func newLinePrompter(in io.Reader, out io.Writer, aliases map[string]string) *linePrompter {
	return &linePrompter{in: &lineReader{in: in}, out: out, aliases: aliases}
}

func (p *linePrompter) AskFreeText(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "%s\n >>> ", question)
	return p.in.readLine()
}

// AskChoice accepts any allowed word case-insensitively, or its alias, and
// asks again until it gets one.
func (p *linePrompter) AskChoice(ctx context.Context, question string, allowed []string) (string, error) {
	text, err := p.AskFreeText(ctx, fmt.Sprintf("%s Choose from: %s", question, strings.Join(allowed, ", ")))
	for {
		if err != nil {
			return "", err
		}
		if word, ok := matchChoice(text, allowed, p.aliases); ok {
			return word, nil
		}
		fmt.Fprint(p.out, formatter.Important(
			fmt.Sprintf("Input not allowed. Available options are %s", strings.Join(allowed, ", "))))
		text, err = p.AskFreeText(ctx, question)
	}
}

// matchChoice resolves text against allowed through the alias table.
func matchChoice(text string, allowed []string, aliases map[string]string) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(text))
	if mapped, ok := aliases[word]; ok {
		word = strings.ToUpper(mapped)
	}
	for _, a := range allowed {
		if word == strings.ToUpper(a) {
			return word, true
		}
	}
	return "", false
}

// lineReader reads until either LF or CR so Enter works in normal and raw
// terminal modes. A CR LF pair counts as one line ending.
type lineReader struct {
	in     io.Reader
	skipLF bool
}

func (r *lineReader) readLine() (string, error) {
	if r.in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := r.in.Read(one[:])
		if n > 0 {
			skip := r.skipLF && one[0] == '\n'
			r.skipLF = false
			switch {
			case skip:
			case one[0] == '\n':
				return string(buf), nil
			case one[0] == '\r':
				r.skipLF = true
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
