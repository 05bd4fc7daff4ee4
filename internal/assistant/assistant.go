// Package assistant orchestrates the on-demand Gemini requests made from the
// checklist: per-step tips, banana ripeness analysis, and flavor variations.
package assistant

import (
	"context"
	"sync"
)

// TipSuffix is appended to every step-tip prompt.
const TipSuffix = " Keep the answer concise (under 40 words) and helpful."

const RipenessPrompt = "Look at these bananas. Are they ripe enough for banana bread? If green, say wait. " +
	"If yellow, suggest adding sugar. If spotted/black, say they are perfect. Be brief and fun. Address the user directly."

const VariationPrompt = "Suggest ONE creative, unique flavor variation for banana bread that works in a bread machine. " +
	"List 2 extra ingredients to add. Keep it short."

// Result is the outcome of one proxy call: exactly one of Text or Err is set.
type Result struct {
	Text string
	Err  string
}

func Ok(text string) Result { return Result{Text: text} }
func Failed(msg string) Result { return Result{Err: msg} }
func (r Result) IsFailure() bool { return r.Err != "" }

// Display returns the string shown in place of the AI answer.
func (r Result) Display() string {
	if r.Err != "" {
		return r.Err
	}
	return r.Text
}

// Caller sends one prompt to the proxy. It never fails: transport problems
// come back as a failed Result.
type Caller interface {
	Ask(ctx context.Context, prompt, imageBase64 string) Result
}

type TipStatus int

const (
	TipAbsent TipStatus = iota
	TipLoading
	TipLoaded
)

// Tip is the transient per-step tip state.
type Tip struct {
	Status TipStatus
	Text   string
}

// Assistant tracks request state for one checklist session. Safe for
// concurrent use; requests for different keys proceed independently.
type Assistant struct {
	caller Caller

	mu         sync.Mutex
	tips       map[int]Tip
	analyzing  bool
	analysis   string
	generating bool
	variation  string
}

func New(caller Caller) *Assistant {
	return &Assistant{
		caller: caller,
		tips:   make(map[int]Tip),
	}
}

// ToggleTip advances the tip for step: Absent starts a request and returns the
// Loaded tip once it resolves, Loaded hides it without a network call, and a
// request while Loading is ignored.
func (a *Assistant) ToggleTip(ctx context.Context, step int, prompt string) Tip {
	a.mu.Lock()
	switch cur := a.tips[step]; cur.Status {
	case TipLoaded:
		delete(a.tips, step)
		a.mu.Unlock()
		return Tip{}
	case TipLoading:
		a.mu.Unlock()
		return cur
	}
	a.tips[step] = Tip{Status: TipLoading}
	a.mu.Unlock()

	res := a.caller.Ask(ctx, prompt+TipSuffix, "")

	tip := Tip{Status: TipLoaded, Text: res.Display()}
	a.mu.Lock()
	a.tips[step] = tip
	a.mu.Unlock()
	return tip
}

// Tip returns the current tip state for step.
func (a *Assistant) Tip(step int) Tip {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tips[step]
}

// AnalyzeRipeness asks for a ripeness verdict on imageBase64 (a data URI or
// bare base64). It returns started=false without a request if an analysis is
// already running.
func (a *Assistant) AnalyzeRipeness(ctx context.Context, imageBase64 string) (answer string, started bool) {
	a.mu.Lock()
	if a.analyzing {
		a.mu.Unlock()
		return "", false
	}
	a.analyzing = true
	a.analysis = ""
	a.mu.Unlock()

	res := a.caller.Ask(ctx, RipenessPrompt, imageBase64)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.analysis = res.Display()
	a.analyzing = false
	return a.analysis, true
}

// GenerateVariation asks for one flavor variation. It returns started=false
// without a request if a generation is already running.
func (a *Assistant) GenerateVariation(ctx context.Context) (answer string, started bool) {
	a.mu.Lock()
	if a.generating {
		a.mu.Unlock()
		return "", false
	}
	a.generating = true
	a.mu.Unlock()

	res := a.caller.Ask(ctx, VariationPrompt, "")

	a.mu.Lock()
	defer a.mu.Unlock()
	a.variation = res.Display()
	a.generating = false
	return a.variation, true
}

func (a *Assistant) Analyzing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.analyzing
}

func (a *Assistant) Analysis() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.analysis
}

func (a *Assistant) GeneratingVariation() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generating
}

func (a *Assistant) Variation() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.variation
}
