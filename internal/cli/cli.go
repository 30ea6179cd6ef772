package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pathsieve/pathsieve/internal/config"
	"github.com/pathsieve/pathsieve/internal/exclude"
	"github.com/pathsieve/pathsieve/internal/glob"
)

const configFilename = "pathsieve.yaml"

// WarnFunc receives one translation warning together with the pattern that
// produced it.
type WarnFunc func(pattern string, w glob.Warning)

// patternList collects repeated -e flags.
type patternList []string

func (p *patternList) String() string { return strings.Join(*p, ",") }

func (p *patternList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Execute parses the command-line arguments and routes execution to the
// appropriate command handler. warnFn is the sink for translation warnings;
// nil installs a stderr printer.
func Execute(warnFn WarnFunc) error {
	if warnFn == nil {
		warnFn = func(pattern string, w glob.Warning) {
			fmt.Fprintf(os.Stderr, "warning: %s in pattern %q at byte %d: %s\n", w.Construct, pattern, w.Pos, w.Message)
		}
	}

	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("no command provided")
	}

	switch os.Args[1] {
	case "translate":
		return runTranslate(os.Args[2:], warnFn)
	case "check":
		return runCheck(os.Args[2:], warnFn)
	case "list":
		return runList(os.Args[2:], warnFn)
	case "init":
		return runInit(os.Args[2:])
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runTranslate prints the regular expression for each pattern argument.
func runTranslate(args []string, warnFn WarnFunc) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	sep := fs.String("sep", "/", "Separator of the paths the expression will match")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %v", err)
	}
	patterns := fs.Args()
	if len(patterns) == 0 {
		return fmt.Errorf("translate requires at least one pattern")
	}

	sepRune, err := parseSep(*sep)
	if err != nil {
		return err
	}

	for _, p := range patterns {
		expr, warns, err := glob.Translate(p, sepRune)
		if err != nil {
			return err
		}
		for _, w := range warns {
			warnFn(p, w)
		}
		fmt.Println(expr)
	}
	return nil
}

// runCheck reports a verdict for each path argument and fails when any
// path is excluded.
func runCheck(args []string, warnFn WarnFunc) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default pathsieve.yaml when present)")
	sep := fs.String("sep", "", "Separator of the target paths (overrides config)")
	var extra patternList
	fs.Var(&extra, "e", "Additional exclude pattern (repeatable)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %v", err)
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("check requires at least one path")
	}

	m, err := buildMatcher(*configPath, *sep, extra, warnFn)
	if err != nil {
		return err
	}

	excluded := 0
	for _, path := range paths {
		if m.Excluded(path) {
			excluded++
			fmt.Printf("excluded %s\n", path)
		} else {
			fmt.Printf("included %s\n", path)
		}
	}
	if excluded > 0 {
		return fmt.Errorf("%d of %d paths excluded", excluded, len(paths))
	}
	return nil
}

// runList walks a directory tree and prints the entries the patterns keep.
func runList(args []string, warnFn WarnFunc) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default pathsieve.yaml when present)")
	sep := fs.String("sep", "", "Separator of the printed paths (overrides config)")
	var extra patternList
	fs.Var(&extra, "e", "Additional exclude pattern (repeatable)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %v", err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("list takes at most one root directory")
	}
	root := "."
	if fs.NArg() == 1 {
		root = fs.Arg(0)
	}

	m, err := buildMatcher(*configPath, *sep, extra, warnFn)
	if err != nil {
		return err
	}

	entries, err := m.Walk(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(e)
	}
	return nil
}

// runInit writes a starter config file into the current directory.
func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing config file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %v", err)
	}

	if _, err := os.Stat(configFilename); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", configFilename)
	}

	if err := os.WriteFile(configFilename, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	fmt.Printf("Created config: %s\n", configFilename)
	return nil
}

const defaultConfig = `version: "1"

exclude:
  patterns:
    - "*.tmp"
    - "/.git"
    - "node_modules"
  separator: "/"
`

// buildMatcher assembles the exclusion matcher shared by check and list:
// patterns and separator from the config file (when given or present),
// then flag overrides on top.
func buildMatcher(configPath, sepFlag string, extra []string, warnFn WarnFunc) (*exclude.Matcher, error) {
	var patterns []string
	sepRune := '/'

	path := configPath
	if path == "" {
		if _, err := os.Stat(configFilename); err == nil {
			path = configFilename
		}
	}
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %v", err)
		}
		patterns = append(patterns, cfg.Exclude.Patterns...)
		sepRune = cfg.Separator()
	}
	if sepFlag != "" {
		r, err := parseSep(sepFlag)
		if err != nil {
			return nil, err
		}
		sepRune = r
	}
	patterns = append(patterns, extra...)

	m, warns, err := exclude.NewMatcher(sepRune, patterns...)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		warnFn(w.Pattern, w.Warning)
	}
	return m, nil
}

func parseSep(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func printUsage() {
	fmt.Println("Usage: pathsieve <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  translate  Print the regular expression for each glob pattern")
	fmt.Println("  check      Report which of the given paths are excluded")
	fmt.Println("  list       Walk a directory tree and print the entries kept")
	fmt.Println("  init       Write a starter pathsieve.yaml")
}
