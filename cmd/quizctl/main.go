package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/parser"
	"github.com/aliskhannn/exam-quiz-bot/internal/repository"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	dataDir    string
	legacyPath string
	extensions []string
	verbose    bool
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "quizctl",
		Short: "Inspect exam question documents",
		Long: `quizctl runs the question extraction used by the bot and prints the result.

Examples:
  quizctl extract --data-dir data
  quizctl extract --category "Slayt 7" --public
  quizctl categories
  quizctl parse data/s7.md`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "data", "directory with one question document per slide")
	flags.StringVar(&opts.legacyPath, "legacy", "questions.md", "legacy single question document")
	flags.StringSliceVar(&opts.extensions, "ext", []string{".md"}, "recognized document extensions")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log extraction details to stderr")

	rootCmd.AddCommand(extractCmd(fs, opts))
	rootCmd.AddCommand(categoriesCmd(fs, opts))
	rootCmd.AddCommand(parseCmd(fs))

	return rootCmd
}

func extractCmd(fs afero.Fs, opts *options) *cobra.Command {
	var (
		category string
		public   bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print all extracted questions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newQuestionService(fs, opts)
			if err != nil {
				return err
			}

			if public {
				questions, err := svc.List(cmd.Context(), category)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), questions)
			}

			questions, err := svc.Questions(cmd.Context(), category)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), questions)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only questions of this category")
	cmd.Flags().BoolVar(&public, "public", false, "omit answers and explanations")

	return cmd
}

func categoriesCmd(fs afero.Fs, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with question counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newQuestionService(fs, opts)
			if err != nil {
				return err
			}

			categories, err := svc.Categories(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, c := range categories {
				fmt.Fprintf(out, "%-12s %d\n", c.Name, c.Count)
				total += c.Count
			}
			fmt.Fprintf(out, "%-12s %d\n", "Toplam", total)
			return nil
		},
	}
}

func parseCmd(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract a single document and report its detected format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			report := parser.Inspect(string(data), parser.CategoryFor(filepath.Base(args[0])))

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"format":    report.Format.String(),
				"blocks":    report.Blocks,
				"questions": report.Questions,
			})
		},
	}
}

func newQuestionService(fs afero.Fs, opts *options) (*service.QuestionService, error) {
	logger := zap.NewNop()
	if opts.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	repo := repository.NewQuestionRepository(fs, repository.QuestionRepositoryConfig{
		DataDir:    opts.dataDir,
		LegacyPath: opts.legacyPath,
		Extensions: opts.extensions,
	})
	return service.NewQuestionService(repo, nil, logger), nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
