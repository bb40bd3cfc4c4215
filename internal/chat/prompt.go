package chat

import (
	"context"
	"strings"

	"askbot/internal/web"
)

// systemPreamble is the fixed opening of every ask prompt.
const systemPreamble = "You are a Discord bot with internet access. " +
	"You can search the web and access current information. " +
	"When users ask about your capabilities, tell them you have internet access " +
	"and can search for current information using web search. " +
	"You maintain conversation context and can refer to previous messages in the conversation."

// Keyword sets for the ordered augmentation rules. Matching is
// case-insensitive substring.
var (
	capabilityKeywords = []string{"internet", "connection", "access", "capabilities"}
	freshnessKeywords  = []string{"search", "latest", "current", "news"}
)

// SearchFunc is the narrow searcher contract the composer consumes, so
// the scraping strategy can be swapped without touching prompt logic.
type SearchFunc func(ctx context.Context, query string) ([]web.Result, error)

// Composer assembles completion prompts from the system preamble,
// per-user history and optional web-search context.
type Composer struct {
	History *History
	Search  SearchFunc
}

// askRule maps a keyword predicate to an augmentation strategy. Rules
// are evaluated top-down; the first match wins, which makes precedence
// an explicit property rather than incidental code order.
type askRule struct {
	keywords []string
	augment  func(c *Composer, ctx context.Context, contextPrompt, message string) (string, error)
}

var askRules = []askRule{
	// Capability questions are answered from the preamble alone, even
	// when the message also contains freshness keywords.
	{keywords: capabilityKeywords, augment: nil},
	{keywords: freshnessKeywords, augment: (*Composer).searchAugment},
}

// ComposeAsk builds the full prompt for an ask exchange. A search
// failure inside an augmentation propagates to the caller.
func (c *Composer) ComposeAsk(ctx context.Context, userID, message string) (string, error) {
	contextPrompt := systemPreamble
	if transcript := c.History.ContextFor(userID); transcript != "" {
		contextPrompt += "\n\nPrevious conversation:\n" + transcript
	}

	for _, rule := range askRules {
		if !matchesAny(message, rule.keywords) {
			continue
		}
		if rule.augment == nil {
			break
		}
		return rule.augment(c, ctx, contextPrompt, message)
	}

	return plainQuestion(contextPrompt, message), nil
}

func (c *Composer) searchAugment(ctx context.Context, contextPrompt, message string) (string, error) {
	results, err := c.Search(ctx, message)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return plainQuestion(contextPrompt, message), nil
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "Title: "+r.Title+"\nSnippet: "+r.Snippet+"\nURL: "+r.URL)
	}

	return contextPrompt +
		"\n\nBased on this recent web information:\n\n" + strings.Join(blocks, "\n\n") +
		"\n\nAnswer this question: " + message, nil
}

func plainQuestion(contextPrompt, message string) string {
	return contextPrompt + "\n\nUser question: " + message
}

func matchesAny(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SummarizePrompt builds the prompt that asks the model to summarize a
// fetched page.
func SummarizePrompt(content web.Content) string {
	return "Summarize this webpage content:\n\n" +
		"Title: " + content.Title + "\n" +
		"URL: " + content.URL + "\n" +
		"Content: " + content.Text
}
