// Package bot wires the Discord gateway to the prompt pipeline and
// dispatches the !ask, !search and !url commands.
package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"askbot/internal/chat"
	"askbot/internal/config"
	"askbot/internal/discord"
	"askbot/internal/httpx"
	"askbot/internal/llm"
	"askbot/internal/web"
)

const logPrefix = "[askbot]"

// Completer is the completion API contract: one text prompt in,
// generated text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Fetcher extracts plain-text content from a single page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (web.Content, error)
}

// Searcher returns up to three results for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]web.Result, error)
}

// Replier sends replies back into the originating channel.
type Replier interface {
	CreateMessage(ctx context.Context, channelID, content, replyToID string) error
	TriggerTyping(ctx context.Context, channelID string)
}

// Runner owns the bot's collaborators and per-process state. The
// history store is the only cross-request mutable state.
type Runner struct {
	history  *chat.History
	composer *chat.Composer
	llm      Completer
	fetcher  Fetcher
	searcher Searcher
	replier  Replier

	mu        sync.RWMutex
	botUserID string
}

// NewRunner builds a dispatcher from explicit collaborators so tests
// can substitute fakes.
func NewRunner(history *chat.History, llmClient Completer, fetcher Fetcher, searcher Searcher, replier Replier) *Runner {
	return &Runner{
		history: history,
		composer: &chat.Composer{
			History: history,
			Search:  searcher.Search,
		},
		llm:      llmClient,
		fetcher:  fetcher,
		searcher: searcher,
		replier:  replier,
	}
}

// Run builds the production collaborators from cfg and holds the
// gateway session open until ctx is canceled.
func Run(ctx context.Context, cfg config.Config) error {
	scrapeClient, err := httpx.NewScrapeClient(cfg.ScrapeProxy)
	if err != nil {
		return err
	}

	webClient := web.NewClient(scrapeClient)
	runner := NewRunner(
		chat.NewHistory(),
		llm.New(cfg.BaseURL, cfg.APIKey, cfg.Model),
		webClient,
		webClient,
		discord.NewRest(cfg.DiscordToken),
	)

	return discord.RunGatewayWithReconnect(
		ctx,
		discord.GatewayURL,
		cfg.DiscordToken,
		discord.DefaultIntents,
		runner.HandleEvent,
		discord.GatewayOptions{},
		discord.ReconnectOptions{
			OnDisconnect: func(err error, next time.Duration) {
				log.Printf("%s gateway disconnected: %v (redial in %s)", logPrefix, err, next)
			},
		},
	)
}

func (r *Runner) setBotUser(u discord.User) {
	r.mu.Lock()
	r.botUserID = u.ID
	r.mu.Unlock()
}

func (r *Runner) isOwnMessage(author discord.User) bool {
	if author.Bot {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.botUserID != "" && author.ID == r.botUserID
}
