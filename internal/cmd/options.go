package cmd

import (
	"maps"

	"github.com/spf13/pflag"

	"github.com/Cyclone1070/fglob"
)

// boolOption maps a command-line flag to the glob option it overrides.
type boolOption struct {
	flag  string
	key   string
	usage string
	def   func(*fglob.Options) bool
}

var boolOptions = []boolOption{
	{"absolute", "absolute", "print absolute paths", func(o *fglob.Options) bool { return o.Absolute }},
	{"base-name-match", "baseNameMatch", "match patterns without slashes against base names", func(o *fglob.Options) bool { return o.BaseNameMatch }},
	{"brace-expansion", "braceExpansion", "expand {a,b} and {1..3}", func(o *fglob.Options) bool { return o.BraceExpansion }},
	{"case-sensitive", "caseSensitiveMatch", "match case-sensitively", func(o *fglob.Options) bool { return o.CaseSensitiveMatch }},
	{"dot", "dot", "let wildcards match names starting with a period", func(o *fglob.Options) bool { return o.Dot }},
	{"follow", "followSymbolicLinks", "descend into symlinked directories", func(o *fglob.Options) bool { return o.FollowSymbolicLinks }},
	{"globstar", "globstar", "let ** cross directory boundaries", func(o *fglob.Options) bool { return o.Globstar }},
	{"mark-directories", "markDirectories", "append / to directories", func(o *fglob.Options) bool { return o.MarkDirectories }},
	{"only-directories", "onlyDirectories", "print directories only", func(o *fglob.Options) bool { return o.OnlyDirectories }},
	{"only-files", "onlyFiles", "print files only", func(o *fglob.Options) bool { return o.OnlyFiles }},
	{"stats", "stats", "include file info in JSON output", func(o *fglob.Options) bool { return o.Stats }},
	{"suppress-errors", "suppressErrors", "skip unreadable directories silently", func(o *fglob.Options) bool { return o.SuppressErrors }},
	{"unique", "unique", "print each path once", func(o *fglob.Options) bool { return o.Unique }},
	{"throw-on-broken-link", "throwErrorOnBrokenSymbolicLink", "fail on broken symbolic links", func(o *fglob.Options) bool { return o.ThrowErrorOnBrokenSymbolicLink }},
	{"gitignore", "gitignore", "skip paths listed in <cwd>/.gitignore", func(o *fglob.Options) bool { return o.Gitignore }},
	{"collect-errors", "collectErrors", "report read errors after the results instead of failing", func(o *fglob.Options) bool { return o.CollectErrors }},
}

func registerOptionFlags(flags *pflag.FlagSet) {
	defaults := fglob.DefaultOptions()
	for _, o := range boolOptions {
		flags.Bool(o.flag, o.def(defaults), o.usage)
	}
	flags.Int("deep", defaults.Deep, "maximum directory depth, negative for unlimited")
	flags.Int("concurrency", defaults.Concurrency, "tasks read at once, 0 for the CPU count")
	flags.StringSliceP("ignore", "i", nil, "patterns to exclude, repeatable")
}

// mergeOptions layers the changed flags over the config file options.
func mergeOptions(flags *pflag.FlagSet, base map[string]any) (map[string]any, error) {
	raw := maps.Clone(base)
	if raw == nil {
		raw = map[string]any{}
	}

	for _, o := range boolOptions {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetBool(o.flag)
		if err != nil {
			return nil, err
		}
		raw[o.key] = v
	}

	for _, name := range []string{"deep", "concurrency"} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return nil, err
		}
		raw[name] = v
	}

	if flags.Changed("ignore") {
		v, err := flags.GetStringSlice("ignore")
		if err != nil {
			return nil, err
		}
		raw["ignore"] = v
	}
	return raw, nil
}
