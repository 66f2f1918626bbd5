package agents

import "strings"

const banner = `──────────────────────────────────────
  nanoshell · talk to a coding agent
──────────────────────────────────────
`

// WelcomeMessage assembles the text shown when a shell starts: the fixed
// banner followed by the agent's own welcome, with a single leading line
// break trimmed from the latter so producers can write it as a raw block.
func WelcomeMessage(cfg Config) string {
	base := ""
	if cfg.Welcome != nil {
		base = cfg.Welcome()
	}
	base = strings.TrimPrefix(base, "\n")
	return banner + base
}
