package agent

import (
	"fmt"
	"strings"

	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/github"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

const intentPrompt = "You are a classifier and helper for GitHub queries. " +
	"Classify the user's request as one of the following:\n" +
	"- 'list_repos'\n" +
	"- 'count_commits'\n" +
	"- 'count_prs'\n" +
	"- 'general_question'\n" +
	"Only output the label."

// Intent is the classified kind of a GitHub request.
type Intent string

// Recognized GitHub intents. Anything outside this set parses to
// IntentUnknown, which yields the generic fallback reply.
const (
	IntentListRepos       Intent = "list_repos"
	IntentCountCommits    Intent = "count_commits"
	IntentCountPRs        Intent = "count_prs"
	IntentGeneralQuestion Intent = "general_question"
	IntentUnknown         Intent = "unknown"
)

// ParseIntent normalizes a classifier reply into an Intent.
func ParseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentListRepos:
		return IntentListRepos
	case IntentCountCommits:
		return IntentCountCommits
	case IntentCountPRs:
		return IntentCountPRs
	case IntentGeneralQuestion:
		return IntentGeneralQuestion
	default:
		return IntentUnknown
	}
}

// fallbackReply answers intents the agent cannot act on.
const fallbackReply = "Sorry, I couldn't process your GitHub request."

// GitHubAgent handles GitHub-related requests. It classifies the latest
// user message into an Intent and executes the matching API workflow.
//
// Like ChatAgent, it always produces exactly one assistant message; API and
// classification failures become error-text replies, not node errors.
type GitHubAgent struct {
	llm llm.Client
	gh  *github.Client
}

// NewGitHubAgent creates a GitHub agent. A nil completion client defers to
// the client on the execution context.
func NewGitHubAgent(client llm.Client, gh *github.Client) *GitHubAgent {
	return &GitHubAgent{llm: client, gh: gh}
}

// Respond implements RespondFunc.
func (a *GitHubAgent) Respond(ctx chatgraph.Context, st state.State) (state.State, error) {
	userMsg, _ := st.LastUserMessage()

	resp, err := pickClient(ctx, a.llm).Complete(ctx, llm.CompletionRequest{
		SystemPrompt: intentPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg.Content},
		},
	})
	if err != nil {
		ctx.Logger().Error("intent classification failed", "error", err)
		return state.Delta(state.Assistant(fmt.Sprintf("Failed to classify GitHub intent: %v", err))), nil
	}
	intent := ParseIntent(resp.Content)

	text, err := a.execute(ctx, intent, userMsg.Content)
	if err != nil {
		ctx.Logger().Error("github request failed", "intent", string(intent), "error", err)
		text = fmt.Sprintf("⚠️ Error processing GitHub request: %v", err)
	}

	reply := state.Assistant(text)
	reply.ToolMeta = map[string]string{"intent": string(intent)}
	return state.Delta(reply), nil
}

// execute runs the workflow for one intent and returns the reply text.
func (a *GitHubAgent) execute(ctx chatgraph.Context, intent Intent, userMsg string) (string, error) {
	switch intent {
	case IntentListRepos:
		return a.listRepos(ctx)
	case IntentCountCommits:
		return a.countCommits(ctx)
	case IntentCountPRs:
		return a.countPRs(ctx)
	case IntentGeneralQuestion:
		return a.generalQuestion(ctx, userMsg)
	default:
		return fallbackReply, nil
	}
}

func (a *GitHubAgent) listRepos(ctx chatgraph.Context) (string, error) {
	user, err := a.gh.AuthenticatedUser(ctx)
	if err != nil {
		return "", err
	}
	repos, err := a.gh.ListRepositories(ctx, user.Login)
	if err != nil {
		return "", err
	}

	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	return fmt.Sprintf("User %s has the following repositories: %s",
		user.Login, strings.Join(names, ", ")), nil
}

func (a *GitHubAgent) countCommits(ctx chatgraph.Context) (string, error) {
	user, err := a.gh.AuthenticatedUser(ctx)
	if err != nil {
		return "", err
	}
	repos, err := a.gh.ListRepositories(ctx, user.Login)
	if err != nil {
		return "", err
	}

	total := 0
	for _, repo := range repos {
		commits, err := a.gh.ListCommits(ctx, user.Login, repo.Name)
		if err != nil {
			// One unreadable repository should not sink the whole count.
			ctx.Logger().Warn("skipping repository, commit listing failed",
				"repo", repo.Name, "error", err)
			continue
		}
		for _, c := range commits {
			if c.Author != nil && c.Author.Login == user.Login {
				total++
			}
		}
	}
	return fmt.Sprintf("User %s has made a total of %d commits across their repositories.",
		user.Login, total), nil
}

func (a *GitHubAgent) countPRs(ctx chatgraph.Context) (string, error) {
	count, err := a.gh.CountPullRequests(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You have opened %d pull requests.", count), nil
}

func (a *GitHubAgent) generalQuestion(ctx chatgraph.Context, userMsg string) (string, error) {
	resp, err := pickClient(ctx, a.llm).Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
