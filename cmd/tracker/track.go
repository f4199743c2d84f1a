package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/config"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/extract"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/item"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/llm"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/prompt"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/reconcile"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/store"
)

var (
	projectID    string
	inputSource  string
	summarize    bool
	forceReparse bool
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Extract action items from meeting notes and merge them into the project",
	Long: `Reads the meeting notes (inline text or a file path), asks the model to
identify new and updated action items among the project's open ones, merges
the result into the stored list, and saves it.`,
	RunE: runTrack,
}

func init() {
	addTrackFlags(trackCmd)
}

func addTrackFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID used for storing and retrieving action items")
	cmd.Flags().StringVarP(&inputSource, "input", "i", "", "meeting notes text, or a path to a UTF-8 text file")
	cmd.Flags().BoolVarP(&summarize, "summarize", "s", false, "print a model-written summary of all items after processing")
	cmd.Flags().BoolVar(&forceReparse, "force-reparse", false, "call the model even when the input text is empty")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("input")
}

func runTrack(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}

	items := st.Load(projectID)
	logger.Info("loaded project",
		zap.String("project", projectID), zap.Int("items", len(items)))

	notes, err := resolveInput(inputSource)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var client llm.Client
	if strings.TrimSpace(notes) == "" && !forceReparse {
		fmt.Println("Input text is empty. No new information to process.")
	} else {
		if client, err = llm.NewFromConfig(cfg.LLM, logger); err != nil {
			return err
		}
		items = processNotes(cmd.Context(), client, st, items, notes)
	}

	if summarize {
		if client == nil {
			if client, err = llm.NewFromConfig(cfg.LLM, logger); err != nil {
				return err
			}
		}
		printSummary(cmd.Context(), client, items)
	}
	return nil
}

// processNotes runs one identify-extract-merge-save pass. Model and
// extraction failures are recoverable: the run continues with the store
// untouched.
func processNotes(ctx context.Context, client llm.Client, st *store.FileStore, items []item.ActionItem, notes string) []item.ActionItem {
	open := openItems(items)
	logger.Info("providing open items as model context", zap.Int("count", len(open)))

	system, user := prompt.Identification(projectID, open, notes)
	reply, err := client.CompleteWithSystem(ctx, system, user)
	if err != nil {
		logger.Warn("no usable response from the model; store left unchanged", zap.Error(err))
		return items
	}

	candidates, err := extract.Candidates(reply)
	if err != nil {
		logger.Warn("could not extract action items from the reply; store left unchanged",
			zap.Error(err), zap.String("reply", snippet(reply)))
		return items
	}

	items = reconcile.New(logger).Merge(projectID, candidates, items)

	if err := st.Save(projectID, items); err != nil {
		logger.Error("failed to save updated action items", zap.Error(err))
	} else {
		fmt.Printf("Saved %d action items for project %s.\n", len(items), projectID)
	}
	return items
}

func printSummary(ctx context.Context, client llm.Client, items []item.ActionItem) {
	if len(items) == 0 {
		fmt.Println("No action items found for this project to summarize.")
		return
	}

	system, user := prompt.Summary(projectID, items)
	reply, err := client.CompleteWithSystem(ctx, system, user)
	if err != nil {
		logger.Warn("failed to generate summary", zap.Error(err))
		return
	}
	fmt.Println("\nProject Summary:")
	fmt.Println(reply)
}

// resolveInput treats the value as a file path when such a file exists,
// otherwise as the literal input text. An unreadable file is fatal.
func resolveInput(source string) (string, error) {
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return source, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	logger.Info("read input from file", zap.String("path", source))
	return string(data), nil
}

// openItems filters for the items worth showing the model as context.
func openItems(items []item.ActionItem) []item.ActionItem {
	open := make([]item.ActionItem, 0, len(items))
	for _, it := range items {
		if it.Status == item.StatusOpen || it.Status == item.StatusInProgress {
			open = append(open, it)
		}
	}
	return open
}

func snippet(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
