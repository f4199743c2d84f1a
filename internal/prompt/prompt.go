// Package prompt builds the system and user prompts sent to the model.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/item"
)

const systemPrompt = "You are an AI assistant specializing in tracking project action items " +
	"from meeting notes or discussions. Your capabilities include: identifying new action items " +
	"(task description, owner, deadline), tracking their status (Open, In Progress, Completed, Cancelled), " +
	"and updating existing items based on new information. Always associate items with the current project context. " +
	"When identifying or updating action items based on meeting notes, respond ONLY with a valid JSON list " +
	"containing the action item objects (new or updated). If no new items or updates are found, respond with " +
	"an empty JSON list []. For other tasks like summarization, respond in clear, concise natural language. " +
	"Focus on extracting information explicitly mentioned or strongly implied in the text."

// System returns the shared system instructions.
func System() string { return systemPrompt }

// Identification builds the prompt asking the model to identify new action
// items in the notes and updates to the open items it is shown.
func Identification(projectID string, openItems []item.ActionItem, notes string) (system, user string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Current Project: %s\n\n", projectID)
	fmt.Fprintf(&b, "Currently Open Action Items:\n%s\n\n", itemsJSON(openItems))
	fmt.Fprintf(&b, "Meeting Notes/Input:\n\"\"\"\n%s\n\"\"\"\n\n", notes)
	b.WriteString("Analyze the notes. Identify any new action items mentioned. " +
		"Check if any open items listed above are discussed or updated " +
		"(e.g., marked as done, progress mentioned, owner assigned or changed). " +
		"Respond ONLY with a JSON list containing objects for new action items or existing items " +
		"that need updates based only on the provided notes. " +
		"For updated items, include their existing \"id\". For new items, omit the \"id\" field " +
		"(it will be generated later). " +
		"Ensure the response is only the JSON list, nothing else before or after. " +
		"If no items are found or updated, return an empty list [].")
	return systemPrompt, b.String()
}

// Summary builds the prompt asking for a natural-language summary of all
// items, grouped by status.
func Summary(projectID string, items []item.ActionItem) (system, user string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Current Project: %s\n\n", projectID)
	fmt.Fprintf(&b, "All Action Items:\n%s\n\n", itemsJSON(items))
	b.WriteString("Provide a concise summary of the action items for this project. " +
		"Group them by status (Open, In Progress, Completed, Cancelled).")
	return systemPrompt, b.String()
}

func itemsJSON(items []item.ActionItem) string {
	if len(items) == 0 {
		return "None"
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "None"
	}
	return string(data)
}
