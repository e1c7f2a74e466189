// Package cli implements zaudit's command-line subcommands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/zarlcorp/zaudit/internal/audit"
	"github.com/zarlcorp/zaudit/internal/breach"
	"github.com/zarlcorp/zaudit/internal/clipboard"
	"github.com/zarlcorp/zaudit/internal/config"
	"github.com/zarlcorp/zaudit/internal/eventlog"
	"github.com/zarlcorp/zaudit/internal/generator"
	"github.com/zarlcorp/zaudit/internal/hasher"
	"github.com/zarlcorp/zaudit/internal/strength"
	"golang.org/x/term"
)

// BreachChecker looks a secret up in a breach corpus.
type BreachChecker interface {
	Check(ctx context.Context, secret string) (breach.Result, error)
}

// Hasher produces a salted adaptive hash.
type Hasher interface {
	Hash(secret string) (string, error)
}

// App holds the collaborators the subcommands need.
type App struct {
	Out       io.Writer
	Err       io.Writer
	Log       *eventlog.Log
	Breach    BreachChecker
	Hasher    Hasher
	Clipboard clipboard.Copier

	// ReadSecret prompts for a secret. Defaults to ReadPassword on stdin.
	ReadSecret func(prompt string) (string, error)
}

// ReadPassword prompts on w and reads a secret without echo. When stdin is
// not a terminal a single line is read instead, so secrets can be piped.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// CmdGenerate generates a password, audits it and prints both.
//
//	zaudit generate [--length N] [--no-upper] [--no-digits] [--no-symbols] [--copy] [--json]
func (a *App) CmdGenerate(args []string) error {
	length := generator.DefaultLength
	if v, ok := flagValue(args, "--length"); ok {
		length = generator.ParseLength(v)
	}

	pool := generator.Pool{
		Lower:   true,
		Upper:   !hasFlag(args, "--no-upper"),
		Digits:  !hasFlag(args, "--no-digits"),
		Symbols: !hasFlag(args, "--no-symbols"),
	}

	pw, res, err := audit.GenerateAndAudit(length, pool)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	copied := false
	if hasFlag(args, "--copy") && a.Clipboard != nil {
		if err := a.Clipboard.Copy(pw); err != nil {
			fmt.Fprintf(a.Err, "zaudit: %v\n", err)
		} else {
			copied = true
		}
	}

	if hasFlag(args, "--json") {
		if err := a.printJSON(generateOutput{Password: pw, Length: length, auditOutput: newAuditOutput(res, nil)}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(a.Out, "  password: %s\n", pw)
		fmt.Fprintf(a.Out, "  entropy:  %.1f bits\n", res.EntropyBits)
		fmt.Fprintf(a.Out, "  score:    %d/100\n", res.Score)
		if copied {
			fmt.Fprintln(a.Out, "  copied to clipboard")
		}
	}

	a.record(eventlog.KindGenerate, "len", length, "score", res.Score, "entropy", res.EntropyBits)
	return nil
}

// CmdAudit reads a secret and prints its audit.
//
//	zaudit audit [--json]
func (a *App) CmdAudit(args []string) error {
	secret, err := a.readSecret("password: ")
	if err != nil {
		return err
	}

	res := audit.Audit(secret)
	guess := strength.Guessability(secret)
	length := len([]rune(secret))

	if hasFlag(args, "--json") {
		if err := a.printJSON(newAuditOutput(res, &guess)); err != nil {
			return err
		}
	} else {
		a.printAudit(length, res, guess)
	}

	a.record(eventlog.KindAudit, "score", res.Score, "entropy", res.EntropyBits)
	return nil
}

// CmdBreach reads a secret and checks it against the breach corpus. A
// failed lookup is an error; it is never reported as not breached.
//
//	zaudit breach [--json]
func (a *App) CmdBreach(ctx context.Context, args []string) error {
	if a.Breach == nil {
		return fmt.Errorf("check unavailable: no breach checker configured")
	}

	secret, err := a.readSecret("password to check: ")
	if err != nil {
		return err
	}

	res, err := a.Breach.Check(ctx, secret)
	if err != nil {
		return fmt.Errorf("check unavailable: %w", err)
	}

	if hasFlag(args, "--json") {
		if err := a.printJSON(res); err != nil {
			return err
		}
	} else if res.Found {
		fmt.Fprintf(a.Out, "  found %d times in known breaches\n", res.Count)
		fmt.Fprintln(a.Out, "  you should change this password immediately")
	} else {
		fmt.Fprintln(a.Out, "  not found in breach databases")
	}

	a.record(eventlog.KindBreach, "result", breachLabel(res))
	return nil
}

// CmdHash reads a secret and prints its bcrypt hash.
//
//	zaudit hash [--cost N]
func (a *App) CmdHash(args []string) error {
	h := a.Hasher
	if v, ok := flagValue(args, "--cost"); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("hash: invalid cost %q", v)
		}
		b, err := hasher.New(cost)
		if err != nil {
			return fmt.Errorf("hash: %w", err)
		}
		h = b
	}
	if h == nil {
		return fmt.Errorf("hash: no hasher configured")
	}

	secret, err := a.readSecret("password: ")
	if err != nil {
		return err
	}

	out, err := h.Hash(secret)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	fmt.Fprintln(a.Out, out)
	a.record(eventlog.KindHash, "result", "generated")
	return nil
}

// CmdLogs prints the most recent log lines.
//
//	zaudit logs [N]
func (a *App) CmdLogs(args []string) error {
	n := config.DefaultRecentEvents
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("logs: invalid count %q", args[0])
		}
		n = v
	}

	if a.Log == nil {
		fmt.Fprintln(a.Out, "no logs yet")
		return nil
	}

	lines, err := a.Log.Recent(n)
	if err != nil {
		return fmt.Errorf("logs: %w", err)
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.Out, "no logs yet")
		return nil
	}
	for _, l := range lines {
		fmt.Fprintln(a.Out, l)
	}
	return nil
}

func (a *App) printAudit(length int, res audit.Result, guess strength.Guess) {
	fmt.Fprintf(a.Out, "  length:   %d\n", length)
	fmt.Fprintf(a.Out, "  entropy:  %.1f bits\n", res.EntropyBits)
	fmt.Fprintf(a.Out, "  score:    %d/100 (%s)\n", res.Score, strength.Rating(res.Score))
	fmt.Fprintf(a.Out, "  patterns: %s, cracked in %s\n", guess.Label(), guess.CrackTime)
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "  checks:")
	for _, c := range res.CheckList() {
		mark := "✘"
		if c.Passed {
			mark = "✔"
		}
		fmt.Fprintf(a.Out, "    %-14s %s\n", c.Name, mark)
	}
	fmt.Fprintln(a.Out)

	if len(res.Tips) == 0 {
		fmt.Fprintln(a.Out, "  no suggestions! your password looks strong")
		return
	}
	fmt.Fprintln(a.Out, "  suggestions:")
	for _, tip := range res.Tips {
		fmt.Fprintf(a.Out, "    - %s\n", tip)
	}
}

func (a *App) readSecret(prompt string) (string, error) {
	read := a.ReadSecret
	if read == nil {
		read = func(p string) (string, error) { return ReadPassword(p, a.Err) }
	}
	return read(prompt)
}

// record appends an event. Log failures never fail the operation.
func (a *App) record(kind eventlog.Kind, kv ...any) {
	if a.Log == nil {
		return
	}
	if err := a.Log.Append(kind, kv...); err != nil {
		slog.Warn("event log", "kind", string(kind), "err", err)
	}
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

type auditOutput struct {
	EntropyBits float64            `json:"entropy_bits"`
	Score       int                `json:"score"`
	Checks      []audit.CheckState `json:"checks"`
	Tips        []string           `json:"tips"`
	Guess       *strength.Guess    `json:"guessability,omitempty"`
}

type generateOutput struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	auditOutput
}

func newAuditOutput(r audit.Result, g *strength.Guess) auditOutput {
	return auditOutput{
		EntropyBits: r.EntropyBits,
		Score:       r.Score,
		Checks:      r.CheckList(),
		Tips:        r.Tips,
		Guess:       g,
	}
}

func breachLabel(r breach.Result) string {
	if r.Found {
		return "found"
	}
	return "not_found"
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the value of "--flag value" or "--flag=value".
func flagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, flag+"="); ok {
			return v, true
		}
		if strings.EqualFold(a, flag) {
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", true
		}
	}
	return "", false
}
