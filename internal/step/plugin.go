package step

import "github.com/buildkite/bkyml/internal/ordered"

// Plugin is a plugin reference with its optional configuration.
type Plugin struct {
	// Name is the plugin identifier, e.g. "docker-compose#v4.0.0".
	Name string

	// Config is nil when the plugin is used without configuration.
	Config *ordered.MapSS
}

// Plugins is a list of plugins in the order they were given.
type Plugins []Plugin

// ParsePlugin parses the tokens of one --plugin flag: the plugin identifier
// followed by key=value configuration pairs.
func ParsePlugin(tokens []string) (Plugin, error) {
	if len(tokens) == 0 {
		return Plugin{}, newError(MissingInput, "--plugin requires a plugin identifier")
	}
	if _, ok := KeyValueOrBareToken(tokens[0]); ok {
		return Plugin{}, newError(InvalidValue, "--plugin: expected a plugin identifier before configuration, got %q", tokens[0])
	}

	p := Plugin{Name: tokens[0]}
	for _, tok := range tokens[1:] {
		kv, ok := KeyValueOrBareToken(tok)
		if !ok {
			return Plugin{}, newError(InvalidValue, "--plugin %s: configuration %q is not in key=value form", p.Name, tok)
		}
		if p.Config == nil {
			p.Config = ordered.NewMap[string, string](len(tokens) - 1)
		}
		p.Config.Set(kv.Key, kv.Value)
	}
	return p, nil
}

// ParsePlugins parses the tokens of each --plugin flag in turn.
func ParsePlugins(groups [][]string) (Plugins, error) {
	ps := make(Plugins, 0, len(groups))
	for _, g := range groups {
		p, err := ParsePlugin(g)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// toMap returns the plugins attribute: plugin name to configuration (or null).
// A plugin given twice keeps its first position and its last configuration.
func (ps Plugins) toMap() *ordered.MapSA {
	m := ordered.NewMap[string, any](len(ps))
	for _, p := range ps {
		if p.Config == nil {
			m.Set(p.Name, nil)
			continue
		}
		m.Set(p.Name, p.Config)
	}
	return m
}

// PluginInput is the input to the plugin subcommand, which emits a step made
// up only of plugins.
type PluginInput struct {
	Name    string
	Plugins Plugins
}

// Build returns {name?, plugins}. With no plugins there is nothing worth
// emitting, and Build returns a nil Document.
func (in PluginInput) Build() (*Document, error) {
	if len(in.Plugins) == 0 {
		return nil, nil
	}

	m := ordered.NewMap[string, any](2)
	if in.Name != "" {
		m.Set("name", in.Name)
	}
	m.Set("plugins", in.Plugins.toMap())
	return &Document{Kind: KindStep, Value: m}, nil
}
