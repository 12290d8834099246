package importer

import (
	"context"

	"github.com/mintmark/mintmark/pkg/collection"
)

// Decision is the duplicate-resolution choice for one import.
type Decision int

// Duplicate-resolution choices.
const (
	// DecisionReplace overwrites the stored item with freshly imported data.
	DecisionReplace Decision = iota
	// DecisionIgnore keeps the stored item untouched.
	DecisionIgnore
	// DecisionCancel aborts the whole batch; processed items are kept.
	DecisionCancel
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case DecisionReplace:
		return "replace"
	case DecisionIgnore:
		return "ignore"
	case DecisionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// DuplicatePrompt carries the context shown when an import collides with an
// already-imported item.
type DuplicatePrompt struct {
	ExternalID int
	Title      string
	Existing   *collection.Item
}

// Decider supplies duplicate-resolution decisions. The second return value
// is the "apply to all remaining" flag: once true, the batch remembers the
// decision and stops prompting. The pipeline awaits one decision at a time,
// so implementations never see concurrent prompts.
type Decider interface {
	Decide(ctx context.Context, prompt DuplicatePrompt) (Decision, bool)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, prompt DuplicatePrompt) (Decision, bool)

// Decide implements the Decider interface.
func (f DeciderFunc) Decide(ctx context.Context, prompt DuplicatePrompt) (Decision, bool) {
	return f(ctx, prompt)
}

// Static deciders for non-interactive use.
var (
	// AlwaysReplace overwrites every duplicate without prompting.
	AlwaysReplace Decider = DeciderFunc(func(context.Context, DuplicatePrompt) (Decision, bool) {
		return DecisionReplace, false
	})

	// AlwaysIgnore skips every duplicate without prompting.
	AlwaysIgnore Decider = DeciderFunc(func(context.Context, DuplicatePrompt) (Decision, bool) {
		return DecisionIgnore, false
	})
)
