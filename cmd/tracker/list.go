package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/config"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/item"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the project's action items grouped by status, without calling the model",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID to list")
	_ = listCmd.MarkFlagRequired("project")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}

	items := st.Load(projectID)
	if len(items) == 0 {
		fmt.Printf("No action items found for project %s.\n", projectID)
		return nil
	}

	fmt.Printf("Action items for project %s (%d total):\n", projectID, len(items))
	for _, status := range []item.Status{item.StatusOpen, item.StatusInProgress, item.StatusCompleted, item.StatusCancelled} {
		var group []item.ActionItem
		for _, it := range items {
			if it.Status == status {
				group = append(group, it)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", status)
		for _, it := range group {
			fmt.Printf("  - %s%s\n", it.Task, itemDetails(it))
		}
	}
	return nil
}

func itemDetails(it item.ActionItem) string {
	var parts []string
	if it.Owner != "" {
		parts = append(parts, "owner: "+it.Owner)
	}
	if it.Deadline != "" {
		parts = append(parts, "due: "+it.Deadline)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
