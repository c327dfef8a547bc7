package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/compiler"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/parser"
)

type checkOptions struct {
	allow              []string
	json               bool
	warningsAsErrors   bool
	languageNamespaces []string
}

func newCheckCmd(exitCode *int) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Parse and validate Slice files, reporting diagnostics",
		Long: "Parse and validate one or more Slice files, given as glob patterns " +
			"(e.g. 'src/**/*.ice'), and report any diagnostics the compiler produces.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runCheck(cmd, args, opts)
			if err != nil {
				return err
			}
			*exitCode = code
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.allow, "allow", nil, "suppress a lint code (or \"All\" for every lint); may be repeated")
	cmd.Flags().BoolVar(&opts.json, "json", false, "emit diagnostics as newline-delimited JSON instead of human-readable text")
	cmd.Flags().BoolVar(&opts.warningsAsErrors, "warnings-as-errors", false, "exit non-zero if any warning-level diagnostic is reported")
	cmd.Flags().StringArrayVar(&opts.languageNamespaces, "language-namespace", nil, "flag an unrecognized attribute whose namespace prefix (e.g. \"cs\" for \"cs::attribute\") matches this value; may be repeated")

	return cmd
}

// runCheck discovers files from patterns, parses and compiles them into a single
// shared store, and writes the resulting diagnostics to cmd's output streams. The
// returned int is the process exit code to use once this succeeds; the error return is
// reserved for failures too fundamental to produce diagnostics at all (a pattern that
// matches nothing, a file that can't be read).
func runCheck(cmd *cobra.Command, patterns []string, opts checkOptions) (int, error) {
	files, err := discoverFiles(patterns)
	if err != nil {
		return exitInternal, err
	}

	store := ast.NewStore()
	compilerFiles := make(map[string]*compiler.File, len(files))
	var diags []diagnostics.Diagnostic

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return exitInternal, fmt.Errorf("reading %s: %w", path, err)
		}
		cf, parseDiags := parser.ParseFile(store, path, src)
		compilerFiles[path] = cf
		diags = append(diags, parseDiags...)
	}

	cs := compiler.NewCompilationState(store, compilerFiles)
	cs.LanguageNamespaces = opts.languageNamespaces
	diags = append(diags, cs.Run()...)

	diagnostics.ApplyAllowList(diags, opts.allow, compiler.NewAllowChecker(cs))
	diagnostics.SortDiagnostics(diags)

	var writeErr error
	if opts.json {
		writeErr = diagnostics.WriteJSON(cmd.OutOrStdout(), diags)
	} else {
		writeErr = diagnostics.WriteHuman(cmd.OutOrStdout(), diags)
	}
	if writeErr != nil {
		return exitInternal, fmt.Errorf("writing diagnostics: %w", writeErr)
	}

	return diagnostics.ExitCodeWithWarnings(diags, opts.warningsAsErrors), nil
}

// discoverFiles expands patterns into a sorted, deduplicated list of file paths. A
// pattern with no glob metacharacters that names a plain file is passed through as-is,
// so a single explicit path always works even outside the current directory's glob
// root.
func discoverFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			} else {
				return nil, fmt.Errorf("pattern %q matched no files", pattern)
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}

	sort.Strings(out)
	return out, nil
}
