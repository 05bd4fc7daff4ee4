package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/vbonduro/bananabread/internal/assistant"
	"github.com/vbonduro/bananabread/internal/checklist"
	"github.com/vbonduro/bananabread/internal/recipe"
)

const helpText = `commands:
  list              show ingredients and steps
  ing <n>           check/uncheck ingredient n
  step <n>          check/uncheck step n
  reset ings|steps  clear a checklist
  tip <n>           ask Gemini about step n (again to hide)
  ripe <photo>      ask Gemini if your bananas are ripe
  vary              generate a flavor variation
  bananas <n>       how many bananas you have (1-6)
  quit`

// session is the terminal view over the checklist trackers and assistant.
type session struct {
	ings     *checklist.Tracker
	steps    *checklist.Tracker
	asst     *assistant.Assistant
	bananas  int
	readFile func(string) ([]byte, error)

	outMu sync.Mutex
	out   io.Writer
	tips  sync.WaitGroup
}

func newSession(ings, steps *checklist.Tracker, asst *assistant.Assistant, out io.Writer) *session {
	return &session{
		ings:     ings,
		steps:    steps,
		asst:     asst,
		bananas:  recipe.DefaultBananas,
		readFile: os.ReadFile,
		out:      out,
	}
}

func (s *session) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// run reads commands until quit, EOF, or ctx is cancelled. In-flight tip
// requests are awaited before returning.
func (s *session) run(ctx context.Context, in io.Reader) error {
	defer s.tips.Wait()

	s.printf("Tailored \"Best Ever\" Banana Bread (Program 9). Type 'help' for commands.\n")
	s.list()

	scanner := bufio.NewScanner(in)
	for {
		s.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if quit := s.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printf("%s\n", helpText)
	case "list", "ls":
		s.list()
	case "ing":
		if i, ok := s.index(args, len(recipe.Ingredients)); ok {
			s.printf("%s %s\n", mark(s.ings.Toggle(ctx, i)), recipe.Ingredients[i].Name)
		}
	case "step":
		if i, ok := s.index(args, len(recipe.Steps)); ok {
			s.printf("%s %s\n", mark(s.steps.Toggle(ctx, i)), recipe.Steps[i].Title)
		}
	case "reset":
		s.reset(ctx, args)
	case "tip":
		if i, ok := s.index(args, len(recipe.Steps)); ok {
			s.tip(ctx, i)
		}
	case "ripe":
		s.ripe(ctx, args)
	case "vary":
		s.printf("Thinking up something fun...\n")
		if answer, started := s.asst.GenerateVariation(ctx); started {
			s.printf("✨ %s\n", answer)
		}
	case "bananas":
		s.setBananas(args)
	default:
		s.printf("unknown command %q, try 'help'\n", cmd)
	}
	return false
}

// index parses a 1-based item number into a 0-based index below n.
func (s *session) index(args []string, n int) (int, bool) {
	if len(args) != 1 {
		s.printf("expected an item number between 1 and %d\n", n)
		return 0, false
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > n {
		s.printf("expected an item number between 1 and %d\n", n)
		return 0, false
	}
	return i - 1, true
}

func (s *session) reset(ctx context.Context, args []string) {
	switch {
	case len(args) == 1 && strings.HasPrefix(args[0], "ing"):
		s.ings.Reset(ctx)
		s.printf("ingredients cleared\n")
	case len(args) == 1 && strings.HasPrefix(args[0], "step"):
		s.steps.Reset(ctx)
		s.printf("steps cleared\n")
	default:
		s.printf("usage: reset ings|steps\n")
	}
}

// tip toggles a step tip in the background so other commands stay usable
// while Gemini answers.
func (s *session) tip(ctx context.Context, i int) {
	if !recipe.HasTip(i) {
		s.printf("no tip for step %d\n", i+1)
		return
	}
	if s.asst.Tip(i).Status == assistant.TipAbsent {
		s.printf("asking Gemini about %q...\n", recipe.Steps[i].Title)
	}

	s.tips.Add(1)
	go func() {
		defer s.tips.Done()
		tip := s.asst.ToggleTip(ctx, i, recipe.Steps[i].AIPrompt)
		switch tip.Status {
		case assistant.TipLoaded:
			s.printf("\n💡 step %d: %s\n", i+1, tip.Text)
		case assistant.TipAbsent:
			s.printf("tip for step %d hidden\n", i+1)
		}
	}()
}

func (s *session) ripe(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("usage: ripe <photo>\n")
		return
	}
	data, err := s.readFile(args[0])
	if err != nil {
		s.printf("could not read photo: %v\n", err)
		return
	}

	uri, ok := dataURI(data)
	if !ok {
		s.printf("unsupported photo format, use JPEG, PNG, GIF, or WebP\n")
		return
	}

	s.printf("Consulting the banana database...\n")
	if answer, started := s.asst.AnalyzeRipeness(ctx, uri); started {
		s.printf("🍌 Gemini says: %s\n", answer)
	}
}

func (s *session) setBananas(args []string) {
	n := recipe.DefaultBananas
	if len(args) == 1 {
		if v, err := strconv.Atoi(args[0]); err == nil && v >= recipe.MinBananas && v <= recipe.MaxBananas {
			n = v
		}
	}
	s.bananas = n
	s.printf("bananas: %d\n", n)
	s.batchingNotice()
}

func (s *session) batchingNotice() {
	if recipe.RequiresBatching(s.bananas) {
		s.printf("⚠️  Batching required: this exceeds the machine capacity (max 3.5 cups flour). Make 2 separate loaves.\n")
		s.printf("📝 Ingredients listed are for ONE loaf. Measure them out twice.\n")
	}
}

func (s *session) list() {
	ings := s.ings.Snapshot()
	steps := s.steps.Snapshot()

	s.printf("\nIngredients (bananas: %d)\n", s.bananas)
	s.batchingNotice()
	for i, ing := range recipe.Ingredients {
		line := strings.TrimSpace(fmt.Sprintf("%s %s", ing.Amount, ing.Unit)) + " " + ing.Name
		if ing.Sub != "" {
			line += " (sub: " + ing.Sub + ")"
		}
		s.printf("  %d. %s %s\n", i+1, mark(ings.Checked(i)), line)
	}

	s.printf("\nInstructions\n")
	for i, st := range recipe.Steps {
		flag := ""
		if st.Critical {
			flag = " ⚠️"
		}
		s.printf("  %d. %s %s%s: %s\n", i+1, mark(steps.Checked(i)), st.Title, flag, st.Text)
		if tip := s.asst.Tip(i); tip.Status == assistant.TipLoaded {
			s.printf("       💡 %s\n", tip.Text)
		}
	}
	s.printf("\n")
}

func mark(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// allowedImageTypes is the set of photo MIME types sniffable by
// http.DetectContentType that Gemini accepts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8). The stdlib sniffer has no WebP signature.
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

func imageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// dataURI encodes a photo the way a browser FileReader does. It reports false
// for data that is not a supported image.
func dataURI(data []byte) (string, bool) {
	mime, ok := imageMIME(data)
	if !ok {
		return "", false
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
