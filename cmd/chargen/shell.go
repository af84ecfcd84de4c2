package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	dnderr "github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/services"
	"github.com/KirkDiggler/chargen/internal/services/chargen"
	"github.com/KirkDiggler/chargen/internal/services/picker"
)

const helpText = `commands:
  new <owner>                       start a draft
  resume <draft id>                 continue a saved draft
  list <owner>                      list an owner's drafts
  options                           features that can be picked in this step
  add <name>[, level=N][, variant=V][, text=T]
  remove <name>[, <variant or text>]
  set <name>, <value>[, <variant or text>]
  show                              items, costs and budgets of this step
  next | back                       move between steps
  save | finish
  quit`

type shell struct {
	provider *services.Provider
	out      io.Writer

	session *chargen.Session
	cancels []func()
}

func newShell(provider *services.Provider, out io.Writer) *shell {
	return &shell{provider: provider, out: out}
}

// run reads commands until quit or end of input
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	sh.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			sh.prompt()
			continue
		}

		quit, err := sh.exec(ctx, line)
		if err != nil {
			sh.report(err)
		}
		if quit {
			return nil
		}
		sh.prompt()
	}
	sh.close()
	return scanner.Err()
}

func (sh *shell) report(err error) {
	fmt.Fprintf(sh.out, "error: %v\n", err)

	var coded *dnderr.Error
	if errors.As(err, &coded) {
		if suggestion, ok := coded.Meta["suggestion"]; ok {
			fmt.Fprintf(sh.out, "did you mean %v?\n", suggestion)
		}
	}
}

func (sh *shell) prompt() {
	if sh.session != nil {
		fmt.Fprintf(sh.out, "[%s] > ", sh.session.Flow().CurrentStepID)
		return
	}
	fmt.Fprint(sh.out, "> ")
}

func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help":
		fmt.Fprintln(sh.out, helpText)
	case "quit", "exit":
		sh.close()
		return true, nil
	case "new":
		return false, sh.start(ctx, rest)
	case "resume":
		return false, sh.resume(ctx, rest)
	case "list":
		return false, sh.list(ctx, rest)
	default:
		if sh.session == nil {
			return false, fmt.Errorf("no open draft, use new or resume (try help)")
		}
		return false, sh.execStep(ctx, strings.ToLower(cmd), rest)
	}
	return false, nil
}

func (sh *shell) execStep(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "options":
		return sh.options()
	case "add":
		return sh.add(rest)
	case "remove":
		args := splitArgs(rest)
		if args[0] == "" {
			return fmt.Errorf("usage: remove <name>[, <variant or text>]")
		}
		return sh.session.Remove(args[0], arg(args, 1))
	case "set":
		return sh.set(rest)
	case "show":
		sh.show()
	case "next":
		if err := sh.session.Next(); err != nil {
			return err
		}
		sh.show()
	case "back":
		if err := sh.session.Back(); err != nil {
			return err
		}
		sh.show()
	case "save":
		if err := sh.session.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "saved %s\n", sh.session.Draft().ID)
	case "finish":
		if err := sh.session.Finish(ctx); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "finished %s\n", sh.session.Draft().ID)
		sh.detach()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (sh *shell) start(ctx context.Context, owner string) error {
	if owner == "" {
		return fmt.Errorf("usage: new <owner>")
	}
	sh.close()

	sess, err := sh.provider.ChargenService.Start(ctx, owner)
	if err != nil {
		return err
	}
	sh.attach(sess)
	fmt.Fprintf(sh.out, "draft %s\n", sess.Draft().ID)
	sh.show()
	return nil
}

func (sh *shell) resume(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("usage: resume <draft id>")
	}
	sh.close()

	sess, err := sh.provider.ChargenService.Resume(ctx, id)
	if err != nil {
		return err
	}
	sh.attach(sess)
	sh.show()
	return nil
}

func (sh *shell) list(ctx context.Context, owner string) error {
	if owner == "" {
		return fmt.Errorf("usage: list <owner>")
	}
	list, err := sh.provider.ChargenService.ListDrafts(ctx, owner)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(sh.out, "no drafts")
		return nil
	}

	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, d := range list {
		step := ""
		if d.Flow != nil {
			step = d.Flow.CurrentStepID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d GP\t%s\n", d.ID, d.Status, step, d.Budgets.Primary, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// attach opens a session and echoes budget changes as they happen
func (sh *shell) attach(sess *chargen.Session) {
	sh.session = sess
	for _, c := range sess.Counters() {
		name := c.Name()
		sh.cancels = append(sh.cancels, c.Watch(func(old, new int) {
			fmt.Fprintf(sh.out, "  %s %d -> %d\n", name, old, new)
		}))
	}
}

func (sh *shell) detach() {
	for _, cancel := range sh.cancels {
		cancel()
	}
	sh.cancels = nil
	sh.session = nil
}

// close suspends an open session without refunding the current step
func (sh *shell) close() {
	if sh.session == nil {
		return
	}
	if err := sh.session.Close(); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
	sh.detach()
}

func (sh *shell) options() error {
	defs, err := sh.session.Picker().Candidates()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, def := range defs {
		var notes []string
		if def.Leveled {
			notes = append(notes, "per level")
		}
		if def.HasVariants() {
			notes = append(notes, "variants: "+strings.Join(def.Variants, "/"))
		}
		if def.FreeText {
			notes = append(notes, "free text")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", def.Name, def.Cost, strings.Join(notes, "; "))
	}
	return w.Flush()
}

func (sh *shell) add(rest string) error {
	sel, err := parseSelection(rest)
	if err != nil {
		return err
	}
	if _, err := sh.session.Choose(sel); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "added %s\n", sel.Name)
	return nil
}

func (sh *shell) set(rest string) error {
	args := splitArgs(rest)
	if len(args) < 2 {
		return fmt.Errorf("usage: set <name>, <value>[, <variant or text>]")
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("value must be a number: %w", err)
	}
	return sh.session.SetValue(args[0], arg(args, 2), value)
}

func (sh *shell) show() {
	step := sh.session.Step()
	fmt.Fprintf(sh.out, "%s (pool %d/%d)\n", step.Name(), step.Pool().Get(), sh.session.Hero().Category(step.Name()).Pool())

	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, it := range step.Items() {
		origin := "chosen"
		if it.Fixed {
			origin = "fixed"
		}
		level := ""
		switch {
		case it.DiscountCategory:
			level = fmt.Sprintf("x%d", it.NumCheaper())
		case it.Definition.Leveled:
			level = strconv.Itoa(it.Value())
		}
		label := it.Label()
		// a detail that came with the background cannot be changed
		if (it.Record.Variant != "" && !it.VariantEditable) || (it.Record.Text != "" && !it.TextEditable) {
			label += " [set]"
		}
		unit := "GP"
		if it.SkillCategory {
			unit = "AP"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d %s\n", label, level, origin, step.Charge(it), unit)
	}
	_ = w.Flush()

	for _, c := range sh.session.Counters() {
		fmt.Fprintf(sh.out, "%s: %d\n", c.Name(), c.Get())
	}
	for _, warning := range sh.session.Warnings() {
		fmt.Fprintf(sh.out, "warning: %s\n", warning)
	}
}

func parseSelection(rest string) (picker.Selection, error) {
	args := splitArgs(rest)
	if args[0] == "" {
		return picker.Selection{}, fmt.Errorf("usage: add <name>[, level=N][, variant=V][, text=T]")
	}

	sel := picker.Selection{Name: args[0]}
	for _, a := range args[1:] {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return sel, fmt.Errorf("expected key=value, got %q", a)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "level":
			n, err := strconv.Atoi(value)
			if err != nil {
				return sel, fmt.Errorf("level must be a number: %w", err)
			}
			sel.Level = n
		case "variant":
			sel.Variant = value
		case "text":
			sel.Text = value
		default:
			return sel, fmt.Errorf("unknown option %q", key)
		}
	}
	return sel, nil
}

// splitArgs splits on commas; names may contain spaces
func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
