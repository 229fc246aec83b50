package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corey/vacha/internal/app"
	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/spf13/cobra"
)

var shellWatch bool

var shellCmd = &cobra.Command{
	Use:   "shell [flags]",
	Short: "Interactive search session",
	Long:  "Reads one query or command per line. Type :help for the command list.",
	Args:  argsBetween(0, 0),
	RunE:  runShell,
}

func init() {
	shellCmd.Flags().BoolVarP(&shellWatch, "watch", "w", false, "Reload the lexicon when its file changes")
}

const shellHelp = `Type a word or phrase to search. * is a wildcard (e.g. *lord, fel*).

  :en          search English → Eald-vacha
  :ev          search Eald-vacha → English
  + / -        raise / lower fuzzy tolerance by 5 (50–95)
  :min N       set fuzzy tolerance to N
  :n           start the next query with ` + decompose.NegationPrefix + ` (negation prefix)
  :d           decompose the headwords of the last English → Eald-vacha search
  :reload      reload the lexicon
  :stats       show lexicon statistics
  :help        this help
  :q           quit
`

func runShell(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if shellWatch {
		if err := watchLexicon(svc); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: lexicon watcher unavailable: %v\n", err)
		}
	}

	color := useColor()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s⚡ vacha shell%s │ %d entries │ :help for commands\n",
		colorIf(colorBold, color), colorIf(colorReset, color), svc.Stats().Entries)

	sh := &shell{svc: svc, sess: app.NewSession(svc), out: out, color: color, prompt: isStdinTTY()}
	return sh.run(cmd.InOrStdin())
}

// shell is the line loop behind `vacha shell`.
type shell struct {
	svc    *app.Service
	sess   *app.Session
	out    io.Writer
	color  bool
	prompt bool
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if sh.prompt {
			fmt.Fprint(sh.out, sh.promptText())
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := sh.handle(strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
	}
}

func (sh *shell) promptText() string {
	neg := ""
	if sh.sess.NegationArmed() {
		neg = decompose.NegationPrefix
	}
	return fmt.Sprintf("[%s %d%%] %s", sh.sess.Direction().Short(), sh.sess.MinScore(), neg)
}

// handle executes one input line and reports whether the session should end.
func (sh *shell) handle(line string) bool {
	switch {
	case line == "":
	case line == ":q" || line == ":quit" || line == ":exit":
		return true
	case line == ":help" || line == ":h" || line == "?":
		fmt.Fprint(sh.out, shellHelp)
	case line == ":en":
		sh.sess.SetDirection(search.EnglishToHeadword)
		fmt.Fprintf(sh.out, "Direction: %s\n", sh.sess.Direction())
	case line == ":ev":
		sh.sess.SetDirection(search.HeadwordToEnglish)
		fmt.Fprintf(sh.out, "Direction: %s\n", sh.sess.Direction())
	case line == "+":
		fmt.Fprintf(sh.out, "Fuzzy tolerance: %d%%\n", sh.sess.AdjustMin(search.MinScoreStep))
	case line == "-":
		fmt.Fprintf(sh.out, "Fuzzy tolerance: %d%%\n", sh.sess.AdjustMin(-search.MinScoreStep))
	case strings.HasPrefix(line, ":min"):
		sh.setMin(strings.TrimSpace(strings.TrimPrefix(line, ":min")))
	case line == ":n":
		sh.sess.ArmNegation()
		fmt.Fprintf(sh.out, "Next query starts with %s\n", decompose.NegationPrefix)
	case line == ":d":
		sh.decompose()
	case line == ":reload":
		if err := sh.svc.Reload(); err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintf(sh.out, "Reloaded: %d entries\n", sh.svc.Stats().Entries)
	case line == ":stats":
		fmt.Fprint(sh.out, formatStats(sh.svc.Stats(), sh.color))
	case strings.HasPrefix(line, ":"):
		sh.fail(fmt.Errorf("unknown command %s (:help for the list)", line))
	default:
		sh.search(line)
	}
	return false
}

func (sh *shell) setMin(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		sh.fail(fmt.Errorf(":min needs a number, got %q", arg))
		return
	}
	if err := sh.sess.SetMinScore(n); err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintf(sh.out, "Fuzzy tolerance: %d%%\n", n)
}

func (sh *shell) search(query string) {
	res, err := sh.sess.Search(query)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprint(sh.out, formatResult(res, sh.color))
	if sh.sess.CanDecompose() {
		fmt.Fprintln(sh.out, paint("(:d to decompose)", colorGray, sh.color))
	}
}

func (sh *shell) decompose() {
	report, err := sh.sess.Decompose()
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprint(sh.out, formatReport(report, sh.color))
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.out, paint(err.Error(), colorYellow, sh.color))
}
