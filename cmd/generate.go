package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/certificate"
	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizgen"
	"github.com/abhisek/tubequiz/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate <url>",
	Short: "Generate a quiz for a YouTube video and print it",
	Long: `Fetch the transcript of a YouTube video, generate a quiz and print it.

With --answer the questions are asked one by one on the terminal and the
result is scored; pass --name as well to receive a certificate when you pass.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("raw", false, "Also print the model output and the rejected blocks")
	generateCmd.Flags().Bool("answer", false, "Answer the questions interactively and get scored")
	generateCmd.Flags().String("name", "", "Name printed on the certificate (with --answer)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	answer, _ := cmd.Flags().GetBool("answer")
	name, _ := cmd.Flags().GetString("name")

	ctx := context.Background()
	sv, err := newServices(ctx, cmd)
	if err != nil {
		return err
	}
	defer sv.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Fetching transcript and generating questions...")

	st, res, err := sv.service.GenerateDetailed(ctx, session.State{}, args[0])
	if raw && res != nil {
		printRaw(out, res)
	}
	if err != nil {
		return err
	}

	if !answer {
		printQuiz(out, st, true)
		return nil
	}

	st = askAnswers(cmd.InOrStdin(), out, st)
	st, outcome := sv.service.Submit(st)
	printOutcome(out, st, outcome, sv.service.Config().PassThreshold)

	if !outcome.Passed || strings.TrimSpace(name) == "" {
		return nil
	}
	cert, err := sv.emitter.Issue(ctx, certificate.Request{
		Name:      name,
		Title:     st.Title,
		Score:     outcome.Score,
		VideoID:   st.VideoID,
		SessionID: st.SessionID,
	})
	if err != nil {
		return fmt.Errorf("issue certificate: %w", err)
	}
	fmt.Fprintf(out, "Certificate %s saved to %s\n", cert.ID, cert.Path)
	return nil
}

// printQuiz writes every question; withKey appends the correct letter.
func printQuiz(w io.Writer, st session.State, withKey bool) {
	fmt.Fprintf(w, "\n%s (%d questions)\n\n", st.Title, len(st.Questions))
	for i, q := range st.Questions {
		printQuestion(w, i, len(st.Questions), q)
		if withKey {
			fmt.Fprintf(w, "  Correct: %s\n", q.Correct)
		}
		fmt.Fprintln(w)
	}
}

func printQuestion(w io.Writer, i, total int, q quiz.QuestionRecord) {
	fmt.Fprintf(w, "── Question %d/%d (%s) ──\n", i+1, total, q.Difficulty)
	fmt.Fprintln(w, q.Prompt)
	for _, l := range quiz.Letters {
		if text, ok := q.Options[l]; ok {
			fmt.Fprintf(w, "  %s) %s\n", l, text)
		}
	}
}

func printRaw(w io.Writer, res *quizgen.Result) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "MODEL OUTPUT")
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, res.Raw)
	fmt.Fprintln(w, sep)
	if len(res.Dropped) == 0 {
		fmt.Fprintln(w, "No blocks rejected.")
		return
	}
	fmt.Fprintf(w, "Rejected %d block(s):\n", len(res.Dropped))
	for _, d := range res.Dropped {
		fmt.Fprintf(w, "  %v\n", d)
	}
}

// askAnswers prompts for each question on r until input ends. Blank lines
// skip a question; anything other than an option letter is asked again.
func askAnswers(r io.Reader, w io.Writer, st session.State) session.State {
	scanner := bufio.NewScanner(r)
	fmt.Fprintf(w, "\n%s\n\n", st.Title)

	for i, q := range st.Questions {
		printQuestion(w, i, len(st.Questions), q)
		for {
			fmt.Fprint(w, "\nYour answer (A-D, blank to skip): ")
			if !scanner.Scan() {
				fmt.Fprintln(w, "\n(input closed)")
				return st
			}
			text := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if text == "" {
				fmt.Fprintln(w, "(skipped)")
				break
			}
			next, err := session.Answer(st, i, quiz.Letter(text))
			if errors.Is(err, session.ErrInvalidOption) {
				fmt.Fprintf(w, "%q is not one of the options.\n", text)
				continue
			}
			st = next
			break
		}
		fmt.Fprintln(w)
	}
	return st
}

func printOutcome(w io.Writer, st session.State, out session.Outcome, threshold float64) {
	fmt.Fprintf(w, "── Your score: %.1f%% (%d/%d correct) ──\n", out.Score, out.Correct, out.Total)
	for i, q := range st.Questions {
		got, ok := st.AnswerFor(i)
		switch {
		case ok && got == q.Correct:
			fmt.Fprintf(w, "  \033[32m✓\033[0m Q%d %s\n", i+1, got)
		case ok:
			fmt.Fprintf(w, "  \033[31m✗\033[0m Q%d %s, correct %s\n", i+1, got, q.Correct)
		default:
			fmt.Fprintf(w, "  \033[31m✗\033[0m Q%d skipped, correct %s\n", i+1, q.Correct)
		}
	}
	if out.Passed {
		fmt.Fprintln(w, "Congratulations! You passed the quiz.")
	} else {
		fmt.Fprintf(w, "Try again! You need %.0f%% or higher to get the certificate.\n", threshold)
	}
}
