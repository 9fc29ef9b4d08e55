package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL walks the parsed KDL document and overlays any values it finds
// onto cfg. Unrecognized nodes are ignored so older config files degrade
// gracefully as fields are added.
func parseKDL(content string, cfg *Config) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse .crosslocale.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "splitter":
			if s, ok := firstStringArg(n); ok {
				cfg.Splitter = s
			}
		case "original_locale":
			if s, ok := firstStringArg(n); ok {
				cfg.OriginalLocale = s
			}
		case "translation_locale":
			if s, ok := firstStringArg(n); ok {
				cfg.TranslationLocale = s
			}
		case "translations_dir":
			if s, ok := firstStringArg(n); ok {
				cfg.TranslationsDir = s
			}
		case "reference_locales":
			cfg.ReferenceLocales = collectStringArgs(n)
		case "include":
			cfg.Include = collectStringArgs(n)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		case "log":
			for _, cn := range n.Children {
				if nodeName(cn) == "verbose" {
					if b, ok := firstBoolArg(cn); ok {
						cfg.LogVerbose = b
					}
				}
			}
		}
	}

	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs supports both inline form (`include "a" "b"`) and
// block form (`exclude { "a" ; "b" }`), matching the two styles kdl-go
// documents support for repeated values.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
