// Package section isolates the derivation of one page section from the rest
// of the page.
package section

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Unavailable is what a page shows in place of a section that failed to derive.
const Unavailable = "data unavailable"

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnavailable    = errors.New(Unavailable)
)

// Run calls fn, turning a panic into an error so the caller can degrade the
// one section instead of the whole page.
func Run(ctx context.Context, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("section %s: %v", name, r)
			zerolog.Ctx(ctx).Error().
				Str("section", name).
				Str("stack", string(debug.Stack())).
				Msgf("section derivation panicked: %v", r)
		}
	}()

	if err := fn(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("section", name).Msg("section derivation failed")
		return fmt.Errorf("section %s: %w", name, err)
	}
	return nil
}

// Collector runs sections and records the ones that failed.
type Collector struct {
	ctx    context.Context
	Errors map[string]string
}

func NewCollector(ctx context.Context) *Collector {
	return &Collector{ctx: ctx}
}

func (c *Collector) Run(name string, fn func() error) {
	if err := Run(c.ctx, name, fn); err != nil {
		if c.Errors == nil {
			c.Errors = make(map[string]string)
		}
		c.Errors[name] = Unavailable
	}
}

// Unknown wraps ErrUnknownSection with the offending name.
func Unknown(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownSection, name)
}
