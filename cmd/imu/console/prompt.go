package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

// YesOrNo asks question and returns Yes or No; an empty answer means Yes.
func YesOrNo(question string) (string, error) {
	return Prompt(question, Yes, No)
}

// Prompt asks question and returns the answer if it matches one of the
// choices, otherwise the first choice, which is the default.
func Prompt(question string, choices ...string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString(question)
	if len(choices) > 0 {
		prompt.WriteString(" [")
		prompt.WriteString(strings.ToUpper(choices[0]))
		for _, c := range choices[1:] {
			prompt.WriteString("/")
			prompt.WriteString(c)
		}
		prompt.WriteString("]:")
	}
	rl, err := readline.New(prompt.String())
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	if len(choices) == 0 {
		return response, nil
	}
	return matchChoice(response, choices), nil
}

func matchChoice(response string, choices []string) string {
	normalized := strings.ToLower(strings.TrimSpace(response))
	for _, c := range choices {
		if normalized == c {
			return normalized
		}
	}
	return choices[0]
}
