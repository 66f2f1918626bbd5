// Package shell hosts the conversation side of an agent connection: a
// Session buffers the agent's streamed output, answers permission and file
// requests, and owns the spawned process for its lifetime.
package shell

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	acp "github.com/coder/acp-go-sdk"
	"github.com/google/uuid"

	"github.com/nanoshell/nanoshell/pkg/tokenizer"
)

type EntryKind string

const (
	EntryAgentMessage EntryKind = "agent_message"
	EntryAgentThought EntryKind = "agent_thought"
	EntryToolCall     EntryKind = "tool_call"
	EntryToolUpdate   EntryKind = "tool_update"
)

// Entry is one buffered conversation event.
type Entry struct {
	Kind       EntryKind
	Text       string
	ToolCallID string
	RawInput   any
}

// Options configures a Session.
type Options struct {
	// Root is the directory subtree the agent may read, and (with
	// AutoApprove) write. Defaults to the current working directory.
	Root string

	// AutoApprove allows mutating tool calls and file writes without asking.
	// Off by default: destructive operations are denied.
	AutoApprove bool

	// Output receives agent message text as it streams in. Nil keeps the
	// text in the buffer only.
	Output io.Writer
}

// Session is the owning context for one agent conversation. It implements
// acp.Client, so the protocol connection streams directly into it.
type Session struct {
	id   string
	opts Options

	mu      sync.Mutex
	entries []Entry
	acpID   acp.SessionId
}

var _ acp.Client = (*Session)(nil)

func NewSession(opts Options) *Session {
	if opts.Root == "" {
		if cwd, err := os.Getwd(); err == nil {
			opts.Root = cwd
		}
	}
	return &Session{
		id:   uuid.NewString(),
		opts: opts,
	}
}

// ID identifies this session on the host side, independent of the ACP
// session negotiated with the agent.
func (s *Session) ID() string {
	return s.id
}

// Bind records the ACP session id once the agent has created its session.
// Requests for any other session id are rejected afterwards.
func (s *Session) Bind(id acp.SessionId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acpID = id
}

// ACPSessionID returns the bound ACP session id, empty before Bind.
func (s *Session) ACPSessionID() acp.SessionId {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acpID
}

// Entries returns a copy of the buffered conversation.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Transcript concatenates all agent message text received so far.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, e := range s.Entries() {
		if e.Kind == EntryAgentMessage {
			b.WriteString(e.Text)
		}
	}
	return b.String()
}

// TokenEstimate approximates the token footprint of the buffered
// conversation. Counting failures are logged and contribute zero.
func (s *Session) TokenEstimate() int64 {
	tok := tokenizer.Get()
	var total int64

	for _, e := range s.Entries() {
		if e.Text != "" {
			if count, err := tok.CountTokens(e.Text); err != nil {
				log.Printf("Warning: failed to count session entry tokens: %v", err)
			} else {
				total += int64(count)
			}
		}
		if e.RawInput != nil {
			if count, err := tok.CountJSONTokens(e.RawInput); err != nil {
				log.Printf("Warning: failed to count tool input tokens: %v", err)
			} else {
				total += int64(count)
			}
		}
	}
	return total
}

func (s *Session) append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *Session) validateSession(id acp.SessionId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acpID != "" && id != s.acpID {
		return fmt.Errorf("unknown session %s", id)
	}
	return nil
}

// SessionUpdate implements acp.Client. Updates stream in during a prompt
// turn; message text is forwarded to Output as it arrives.
func (s *Session) SessionUpdate(ctx context.Context, params acp.SessionNotification) error {
	if err := s.validateSession(params.SessionId); err != nil {
		return err
	}

	update := params.Update
	switch {
	case update.AgentMessageChunk != nil:
		if update.AgentMessageChunk.Content.Text != nil {
			text := update.AgentMessageChunk.Content.Text.Text
			s.append(Entry{Kind: EntryAgentMessage, Text: text})
			if s.opts.Output != nil {
				if _, err := s.opts.Output.Write([]byte(text)); err != nil {
					return err
				}
			}
		}
	case update.AgentThoughtChunk != nil:
		if update.AgentThoughtChunk.Content.Text != nil {
			s.append(Entry{Kind: EntryAgentThought, Text: update.AgentThoughtChunk.Content.Text.Text})
		}
	case update.ToolCall != nil:
		s.append(Entry{
			Kind:       EntryToolCall,
			Text:       update.ToolCall.Title,
			ToolCallID: string(update.ToolCall.ToolCallId),
			RawInput:   update.ToolCall.RawInput,
		})
	case update.ToolCallUpdate != nil:
		s.append(Entry{
			Kind:       EntryToolUpdate,
			Text:       fmt.Sprintf("%v", update.ToolCallUpdate.Status),
			ToolCallID: string(update.ToolCallUpdate.ToolCallId),
		})
	}
	return nil
}

// resolvePath confines agent file access to the session root.
func (s *Session) resolvePath(requested string) (string, error) {
	if requested == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	path := requested
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.opts.Root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(s.opts.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the session root", requested)
	}
	return path, nil
}

// ReadTextFile implements acp.Client.
func (s *Session) ReadTextFile(ctx context.Context, params acp.ReadTextFileRequest) (acp.ReadTextFileResponse, error) {
	if err := s.validateSession(params.SessionId); err != nil {
		return acp.ReadTextFileResponse{}, err
	}

	path, err := s.resolvePath(params.Path)
	if err != nil {
		return acp.ReadTextFileResponse{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return acp.ReadTextFileResponse{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	content := string(raw)
	if params.Line != nil || params.Limit != nil {
		lines := strings.Split(content, "\n")
		start := 0
		if params.Line != nil && *params.Line > 1 {
			start = min(*params.Line-1, len(lines))
		}
		end := len(lines)
		if params.Limit != nil && *params.Limit >= 0 {
			end = min(start+*params.Limit, len(lines))
		}
		content = strings.Join(lines[start:end], "\n")
	}

	return acp.ReadTextFileResponse{Content: content}, nil
}

// WriteTextFile implements acp.Client. Writes are a mutating operation and
// require AutoApprove.
func (s *Session) WriteTextFile(ctx context.Context, params acp.WriteTextFileRequest) (acp.WriteTextFileResponse, error) {
	if err := s.validateSession(params.SessionId); err != nil {
		return acp.WriteTextFileResponse{}, err
	}
	if !s.opts.AutoApprove {
		return acp.WriteTextFileResponse{}, fmt.Errorf("write operation not permitted without auto-approve")
	}

	path, err := s.resolvePath(params.Path)
	if err != nil {
		return acp.WriteTextFileResponse{}, err
	}

	if err := os.WriteFile(path, []byte(params.Content), 0o644); err != nil {
		return acp.WriteTextFileResponse{}, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return acp.WriteTextFileResponse{}, nil
}
