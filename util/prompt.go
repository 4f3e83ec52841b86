package util

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on Out and reads answers from In.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: bufio.NewReader(in), Out: out}
}

func (p *Prompter) readLine() (string, error) {
	response, err := p.In.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (p *Prompter) PromptString(prompt string, def string) (string, error) {
	fmt.Fprintf(p.Out, "%s (%s): ", prompt, def)

	response, err := p.readLine()
	if err == io.EOF {
		return def, nil
	}
	if err != nil {
		return "", err
	}

	if response == "" {
		return def, nil
	}

	return response, nil
}

func (p *Prompter) PromptYN(prompt string, def bool) (bool, error) {
	if def {
		fmt.Fprintf(p.Out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.Out, "%s (y/N): ", prompt)
	}

	response, err := p.readLine()
	if err == io.EOF {
		return def, nil
	}
	if err != nil {
		return false, err
	}

	if response == "" {
		return def, nil
	}

	return strings.ToLower(response) == "y", nil
}

// PromptList reads a comma separated list, returning def on an empty answer.
func (p *Prompter) PromptList(prompt string, def []string) ([]string, error) {
	response, err := p.PromptString(prompt, strings.Join(def, ","))
	if err != nil {
		return nil, err
	}

	var out []string
	for _, item := range strings.Split(response, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}
