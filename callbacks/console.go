package callbacks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/markpollack/agentloop"
)

// lineReader is the slice of readline's API the console needs; swapped for
// a script in tests.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// Console is an interactive observer that prints final responses and
// answers the agent's questions from the terminal via readline.
//
// For each question it shows the prompt, the numbered options, and reads
// one line. The answer may be an option number, an option ID, or (when the
// question allows it) free text. An empty line leaves the question
// unanswered; Ctrl-C or EOF stops answering the remaining questions.
type Console struct {
	agentloop.NoopCallback

	out       io.Writer
	newReader func() (lineReader, error)
}

// NewConsole creates a Console reading from the terminal and writing to
// stdout.
func NewConsole() *Console {
	return &Console{
		out: os.Stdout,
		newReader: func() (lineReader, error) {
			return readline.New("answer> ")
		},
	}
}

// OnResponse prints the turn's final response text. Partial chunks are
// ignored to keep terminal output readable.
func (c *Console) OnResponse(text string, final bool) {
	if final {
		fmt.Fprintln(c.out, text)
	}
}

// OnQuestion prompts the user for each question and returns the collected
// answers keyed by question text. Unanswered questions are simply absent
// from the map.
func (c *Console) OnQuestion(questions []agentloop.Question) map[string]string {
	answers := map[string]string{}

	rl, err := c.newReader()
	if err != nil {
		// No terminal available; every question goes unanswered.
		return answers
	}
	defer rl.Close()

	for _, q := range questions {
		c.printQuestion(q)
		rl.SetPrompt("answer> ")

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return answers
			}
			return answers
		}

		if answer, ok := parseAnswer(q, strings.TrimSpace(line)); ok {
			answers[q.Text] = answer
		}
	}
	return answers
}

func (c *Console) printQuestion(q agentloop.Question) {
	if q.Category != "" {
		fmt.Fprintf(c.out, "[%s] %s\n", q.Category, q.Text)
	} else {
		fmt.Fprintln(c.out, q.Text)
	}
	for i, opt := range q.Options {
		fmt.Fprintf(c.out, "  %d. %s - %s\n", i+1, opt.ID, opt.Description)
	}
	if q.FreeText {
		fmt.Fprintln(c.out, "  (or type a free-text answer)")
	}
}

// parseAnswer resolves the typed line to an answer: an option number, an
// option ID, or free text when allowed. ok=false means unanswered.
func parseAnswer(q agentloop.Question, line string) (answer string, ok bool) {
	if line == "" {
		return "", false
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1].ID, true
	}
	for _, opt := range q.Options {
		if line == opt.ID {
			return opt.ID, true
		}
	}
	if q.FreeText {
		return line, true
	}
	return "", false
}

// Compile-time check that Console implements AgentCallback.
var _ agentloop.AgentCallback = (*Console)(nil)

// Compile-time check that readline satisfies the console's reader slice.
var _ lineReader = (*readline.Instance)(nil)
