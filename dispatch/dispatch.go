// Package dispatch parses command lines, resolves verbs against a static
// registry, and assembles handler arguments from tokens and ambient context.
// The free-text and structured command mediums both funnel through here, so
// a handler never knows which one invoked it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/logcolors"
	"catalog-bot-go/resolver"
	"catalog-bot-go/stats"
	"catalog-bot-go/surface"
)

// Prefix is the fixed two-character prefix of text commands.
const Prefix = "s!"

// Ambient parameter names. A declared parameter with one of these names is
// injected from the invocation context instead of being filled from tokens.
const (
	ParamCaller    = "caller"
	ParamAuthToken = "authentication_token"
	ParamSurface   = "invocation_surface"
	ParamHost      = "host_context"
)

var ambientParams = map[string]bool{
	ParamCaller:    true,
	ParamAuthToken: true,
	ParamSurface:   true,
	ParamHost:      true,
}

// MissingParameterError reports a declared parameter with no token to fill
// it. It is caught at the dispatch boundary and turned into a reply.
type MissingParameterError struct {
	Verb  string
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("command %q is missing required parameter %q", e.Verb, e.Param)
}

// Param declares one handler parameter. A CatchAll param consumes every
// remaining token joined with single spaces; only the last parameter may be
// a catch-all.
type Param struct {
	Name     string
	CatchAll bool
}

// Invocation is everything a handler receives: the ambient context plus the
// assembled argument map.
type Invocation struct {
	Surface surface.Surface
	Caller  surface.Caller
	Token   string
	Args    map[string]string
}

// Arg returns the named argument ("" when absent).
func (inv *Invocation) Arg(name string) string {
	return inv.Args[name]
}

// Handler runs one command.
type Handler func(ctx context.Context, inv *Invocation) error

// Command is one registered verb.
type Command struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Registry maps verbs to commands. It is populated once at startup; no
// dynamic symbol lookup happens at dispatch time.
type Registry struct {
	commands map[string]*Command

	// TokenSource supplies the current auth token for the
	// authentication_token ambient parameter.
	TokenSource func() string
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command. Verbs are matched case-insensitively.
func (r *Registry) Register(cmd *Command) {
	r.commands[strings.ToLower(cmd.Name)] = cmd
}

// Lookup finds a command by verb.
func (r *Registry) Lookup(verb string) (*Command, bool) {
	cmd, ok := r.commands[strings.ToLower(verb)]
	return cmd, ok
}

// Verbs returns the registered verb names, sorted.
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.commands))
	for v := range r.commands {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// Dispatch handles one free-text line. It requires the fixed prefix, splits
// the remainder into verb and tokens, and invokes exactly one handler or
// emits exactly one error reply.
func (r *Registry) Dispatch(ctx context.Context, line string, s surface.Surface) error {
	if !strings.HasPrefix(line, Prefix) {
		return nil
	}
	if len(strings.TrimSpace(line)) < len(Prefix)+1 {
		return s.Reply("Hello there. If you need help, run " + Prefix + "help")
	}

	parts := strings.Fields(line[len(Prefix):])
	verb, tokens := parts[0], parts[1:]
	return r.run(ctx, verb, tokens, nil, s)
}

// DispatchNamed handles one structured invocation with named arguments. The
// same registry and handlers serve both mediums.
func (r *Registry) DispatchNamed(ctx context.Context, verb string, args map[string]string, s surface.Surface) error {
	return r.run(ctx, verb, nil, args, s)
}

// run resolves the verb, assembles the argument map, and invokes the
// handler. Validation failures become replies, never propagated errors.
func (r *Registry) run(ctx context.Context, verb string, tokens []string, named map[string]string, s surface.Surface) error {
	cmd, ok := r.Lookup(verb)
	if !ok {
		stats.Get().RecordUnknownCommand()
		log.Debugf("%s Unknown verb %q from %s", logcolors.LogDispatch, verb, s.Caller().ID)
		return s.Reply(fmt.Sprintf("The command you entered '%s' is invalid.", verb))
	}
	stats.Get().RecordDispatch()

	inv := &Invocation{
		Surface: s,
		Caller:  s.Caller(),
		Args:    make(map[string]string),
	}
	if r.TokenSource != nil {
		inv.Token = r.TokenSource()
	}

	if err := fillArgs(cmd, inv, tokens, named); err != nil {
		stats.Get().RecordMissingParameter()
		log.Debugf("%s %v", logcolors.LogDispatch, err)
		return s.Reply(fmt.Sprintf("The command '%s' is missing a required parameter. See help for details.", cmd.Name))
	}

	log.Infof("%s %s invoked %q via %s medium", logcolors.LogDispatch, inv.Caller.ID, cmd.Name, s.Medium())

	if err := cmd.Handler(ctx, inv); err != nil {
		// InvalidIdentifier surfaces verbatim; anything else gets a
		// generic reply so the dispatch loop never crashes.
		var invalid *resolver.InvalidIdentifierError
		if errors.As(err, &invalid) {
			return s.Reply(invalid.Error())
		}
		log.Errorf("%s Handler %q failed: %v", logcolors.LogDispatch, cmd.Name, err)
		return s.Reply(fmt.Sprintf("The command '%s' encountered an unexpected error.", cmd.Name))
	}
	return nil
}

// fillArgs resolves each declared parameter: ambient names come from the
// invocation context, the rest are filled positionally from tokens (or by
// name from a structured call); a catch-all swallows all remaining tokens.
func fillArgs(cmd *Command, inv *Invocation, tokens []string, named map[string]string) error {
	pos := 0
	for _, p := range cmd.Params {
		if ambientParams[p.Name] {
			// Ambient values ride on the Invocation itself; nothing to
			// copy into Args.
			continue
		}

		if named != nil {
			v, ok := named[p.Name]
			if !ok || v == "" {
				return &MissingParameterError{Verb: cmd.Name, Param: p.Name}
			}
			inv.Args[p.Name] = v
			continue
		}

		if p.CatchAll {
			if pos >= len(tokens) {
				return &MissingParameterError{Verb: cmd.Name, Param: p.Name}
			}
			inv.Args[p.Name] = strings.Join(tokens[pos:], " ")
			pos = len(tokens)
			continue
		}

		if pos >= len(tokens) {
			return &MissingParameterError{Verb: cmd.Name, Param: p.Name}
		}
		inv.Args[p.Name] = tokens[pos]
		pos++
	}
	return nil
}
