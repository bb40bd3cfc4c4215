package bot

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"askbot/internal/chat"
	"askbot/internal/discord"
)

// Command prefixes. Anything else is ignored.
const (
	askPrefix    = "!ask "
	searchPrefix = "!search "
	urlPrefix    = "!url "
)

// Reply length policy: Discord caps messages at 2000 chars; oversized
// ask/url replies are cut to 1997 plus an ellipsis, search replies to
// 1950 plus a truncation notice.
const (
	maxReplyLen       = 2000
	askCutLen         = 1997
	searchCutLen      = 1950
	searchTruncMarker = "...\n\n*Results truncated*"
	contentPreviewLen = 80
)

// Fixed user-facing apologies, one per command. Details stay in logs.
const (
	askApology    = "Sorry, I encountered an error while processing your request."
	searchApology = "Sorry, search is currently unavailable."
	urlApology    = "Sorry, I could not fetch content from that URL."
)

// HandleEvent is the gateway dispatch entry point.
func (r *Runner) HandleEvent(ctx context.Context, event string, data json.RawMessage) error {
	switch event {
	case discord.EventReady:
		ready, err := discord.ParseReady(data)
		if err != nil {
			return err
		}
		r.setBotUser(ready.User)
		log.Printf("%s logged in as %s", logPrefix, ready.User.Username)
	case discord.EventMessageCreate:
		msg, err := discord.ParseMessage(data)
		if err != nil {
			return err
		}
		if msg.ChannelID == "" || r.isOwnMessage(msg.Author) {
			return nil
		}
		// Each message is handled independently; a slow completion
		// must not hold up the gateway read loop.
		go r.dispatch(ctx, msg)
	}
	return nil
}

// dispatch classifies one inbound message and runs its command. All
// failures stop at this boundary as a logged apology reply.
func (r *Runner) dispatch(ctx context.Context, msg discord.Message) {
	switch {
	case strings.HasPrefix(msg.Content, askPrefix):
		r.handleAsk(ctx, msg, msg.Content[len(askPrefix):])
	case strings.HasPrefix(msg.Content, searchPrefix):
		r.handleSearch(ctx, msg, msg.Content[len(searchPrefix):])
	case strings.HasPrefix(msg.Content, urlPrefix):
		r.handleURL(ctx, msg, msg.Content[len(urlPrefix):])
	}
}

func (r *Runner) handleAsk(ctx context.Context, msg discord.Message, question string) {
	log.Printf("%s ask: user=%s content=%q", logPrefix, msg.Author.ID, previewString(question, contentPreviewLen))
	r.replier.TriggerTyping(ctx, msg.ChannelID)

	prompt, err := r.composer.ComposeAsk(ctx, msg.Author.ID, question)
	if err != nil {
		log.Printf("%s ask compose failed: user=%s err=%v", logPrefix, msg.Author.ID, err)
		r.reply(ctx, msg, askApology)
		return
	}

	text, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		log.Printf("%s ask completion failed: user=%s err=%v", logPrefix, msg.Author.ID, err)
		r.reply(ctx, msg, askApology)
		return
	}

	// Only completed exchanges become memory; failures leave no trace.
	r.history.Record(msg.Author.ID, question, text)
	r.reply(ctx, msg, truncateAskReply(text))
}

func (r *Runner) handleSearch(ctx context.Context, msg discord.Message, query string) {
	log.Printf("%s search: user=%s query=%q", logPrefix, msg.Author.ID, previewString(query, contentPreviewLen))
	r.replier.TriggerTyping(ctx, msg.ChannelID)

	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		log.Printf("%s search failed: user=%s err=%v", logPrefix, msg.Author.ID, err)
		r.reply(ctx, msg, searchApology)
		return
	}
	if len(results) == 0 {
		r.reply(ctx, msg, "No search results found.")
		return
	}

	var b strings.Builder
	b.WriteString("**Search results for: " + query + "**\n\n")
	for i, result := range results {
		b.WriteString("**" + strconv.Itoa(i+1) + ". " + result.Title + "**\n")
		b.WriteString(result.Snippet + "\n")
		b.WriteString(result.URL + "\n\n")
	}
	r.reply(ctx, msg, truncateSearchReply(b.String()))
}

func (r *Runner) handleURL(ctx context.Context, msg discord.Message, rawURL string) {
	log.Printf("%s url: user=%s url=%q", logPrefix, msg.Author.ID, previewString(rawURL, contentPreviewLen))
	r.replier.TriggerTyping(ctx, msg.ChannelID)

	content, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		log.Printf("%s url fetch failed: user=%s err=%v", logPrefix, msg.Author.ID, err)
		r.reply(ctx, msg, urlApology)
		return
	}

	text, err := r.llm.Complete(ctx, chat.SummarizePrompt(content))
	if err != nil {
		log.Printf("%s url completion failed: user=%s err=%v", logPrefix, msg.Author.ID, err)
		r.reply(ctx, msg, urlApology)
		return
	}

	r.reply(ctx, msg, truncateAskReply(text))
}

func (r *Runner) reply(ctx context.Context, msg discord.Message, content string) {
	if err := r.replier.CreateMessage(ctx, msg.ChannelID, content, msg.ID); err != nil {
		log.Printf("%s reply failed: channel=%s err=%v", logPrefix, msg.ChannelID, err)
	}
}

func truncateAskReply(s string) string {
	r := []rune(s)
	if len(r) <= maxReplyLen {
		return s
	}
	return string(r[:askCutLen]) + "..."
}

func truncateSearchReply(s string) string {
	r := []rune(s)
	if len(r) <= maxReplyLen {
		return s
	}
	return string(r[:searchCutLen]) + searchTruncMarker
}

// previewString trims s to at most maxRunes runes for log lines.
func previewString(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "…"
}
