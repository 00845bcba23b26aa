package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// ScriptedPrompter answers prompts from a fixed script. When the script runs
// out every prompt returns io.EOF, which ends a session cleanly.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []string
	Questions []string
	Aliases   map[string]string
}

func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

func (p *ScriptedPrompter) next(question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

// Remaining reports how many scripted answers were not consumed.
func (p *ScriptedPrompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}

// AskChoice consumes answers until one is allowed, mirroring a real
// prompter's re-prompting. Answers pass through Aliases when set.
func (p *ScriptedPrompter) AskChoice(ctx context.Context, question string, allowed []string) (string, error) {
	for {
		a, err := p.next(question)
		if err != nil {
			return "", err
		}
		word := strings.ToUpper(strings.TrimSpace(a))
		if mapped, ok := p.Aliases[word]; ok {
			word = mapped
		}
		for _, opt := range allowed {
			if word == strings.ToUpper(opt) {
				return word, nil
			}
		}
	}
}

func (p *ScriptedPrompter) AskFreeText(ctx context.Context, question string) (string, error) {
	return p.next(question)
}

// FakeClock returns a settable instant.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemTreeRepo keeps a tree in memory. A nil tree behaves as an absent file.
type MemTreeRepo struct {
	Root    *tree.Node
	Saves   int
	SaveErr error
}

func (r *MemTreeRepo) Load(ctx context.Context) (*tree.Node, error) {
	if r.Root == nil {
		return nil, fmt.Errorf("memory tree: %w", domain.ErrFileAbsent)
	}
	return r.Root.Clone(), nil
}

func (r *MemTreeRepo) Save(ctx context.Context, root *tree.Node) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Root = root.Clone()
	r.Saves++
	return nil
}
