/*
shell.go - Console front-end for Jobstack Tycoon

PURPOSE:
  Plays one game over a text stream: prints each customer, prompts for a bill
  rate and then a pay rate, reports the round, and prints a summary table at
  the end. Input and output are plain io.Reader / io.Writer so the whole game
  can be driven from a test.

FLOW PER ROUND:
  1. Deal customer and workers
  2. Prompt bill rate; a customer who rejects it ends the round without a
     pay prompt
  3. Prompt pay rate and settle
  4. Print message and running score, acknowledge

SEE ALSO:
  - tycoon/game.go: Round state machine
  - cmd/console/main.go: Entry point
*/
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/jobstack/logger"
	"github.com/warp/jobstack/tycoon"
)

const (
	PromptBillRate = "Propose a bill rate per hour: "
	PromptPayRate  = "Propose a pay rate for workers: "
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed")

// Shell runs a game against a line-oriented reader and writer.
type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	factory *tycoon.EntityFactory
	log     *zap.Logger
}

// NewShell creates a shell dealing rounds from factory.
func NewShell(in io.Reader, out io.Writer, factory *tycoon.EntityFactory, log *zap.Logger) *Shell {
	if log == nil {
		log = logger.NewNop()
	}
	return &Shell{
		in:      bufio.NewScanner(in),
		out:     out,
		factory: factory,
		log:     log,
	}
}

// Play runs a full game and returns it in the game-over phase.
func (s *Shell) Play() (*tycoon.Game, error) {
	g := tycoon.NewGame(tycoon.NewGameID(), s.factory.Profile().Name)

	for g.Phase != tycoon.PhaseGameOver {
		if err := s.playRound(g); err != nil {
			return g, err
		}
	}

	fmt.Fprintf(s.out, "\nYour final score after %d rounds is: %s\n", tycoon.RoundsPerGame, tycoon.FormatMoney(g.Score()))
	s.PrintSummary(g.Session.Summarize())
	return g, nil
}

func (s *Shell) playRound(g *tycoon.Game) error {
	customer, _, err := g.Deal(s.factory)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\n--- Round %d ---\n", g.Round)
	s.printCustomer(customer)

	billRate, err := s.readRate(PromptBillRate)
	if err != nil {
		return err
	}

	payRate := decimal.Zero
	if customer.Accepts(billRate) {
		if payRate, err = s.readRate(PromptPayRate); err != nil {
			return err
		}
	}

	st, err := g.SubmitOffer(billRate, payRate)
	if err != nil {
		return err
	}
	s.log.Debug("round settled",
		zap.Int("round", g.Round),
		zap.String("outcome", string(st.Outcome)),
		zap.String("earnings", st.Earnings.StringFixed(2)),
	)

	fmt.Fprintln(s.out, st.Message)
	fmt.Fprintf(s.out, "Your total score after this round is: %s\n", tycoon.FormatMoney(g.Score()))

	return g.Acknowledge()
}

func (s *Shell) printCustomer(c tycoon.Customer) {
	if !c.Position.IsZero() {
		fmt.Fprintf(s.out, "%s %s\n", c.Position.Icon, c.Position.Name)
	}
	fmt.Fprintf(s.out, "Customer needs %d workers for %d days.\n", c.WorkersNeeded, c.DaysNeeded)
	if c.HasDisplayedBudget() {
		fmt.Fprintf(s.out, "Customer's budget is around %d per hour.\n", c.DisplayedBudget)
		return
	}
	fmt.Fprintf(s.out, "Customer's budget is between %d and %d per hour.\n", c.MinBudget, c.MaxBudget)
}

// readRate prompts until a non-negative number is entered.
func (s *Shell) readRate(prompt string) (decimal.Decimal, error) {
	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return decimal.Zero, err
			}
			return decimal.Zero, ErrInputClosed
		}
		line := strings.TrimPrefix(strings.TrimSpace(s.in.Text()), "$")
		rate, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a number.")
			continue
		}
		if rate.IsNegative() {
			fmt.Fprintln(s.out, "Rates cannot be negative.")
			continue
		}
		return rate, nil
	}
}

// PrintSummary writes the round table with aligned columns.
func (s *Shell) PrintSummary(summary tycoon.Summary) {
	fmt.Fprintln(s.out)
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range summary.Table() {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	tw.Flush()
}
