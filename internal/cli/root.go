package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaelwright/readable/internal/build"
	"github.com/kaelwright/readable/internal/config"
	"github.com/kaelwright/readable/internal/docmeta"
	"github.com/kaelwright/readable/internal/fetcher"
	"github.com/kaelwright/readable/internal/mdconvert"
	"github.com/kaelwright/readable/internal/readability"
	"github.com/kaelwright/readable/internal/telemetry"
	"github.com/kaelwright/readable/pkg/fileutil"
	"github.com/kaelwright/readable/pkg/hashutil"
	"github.com/kaelwright/readable/pkg/limiter"
	"github.com/kaelwright/readable/pkg/retry"
	"github.com/kaelwright/readable/pkg/timeutil"
	"github.com/kaelwright/readable/pkg/urlutil"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var (
	cfgFile            string
	stripUnlikelys     bool
	weightClasses      bool
	cleanConditionally bool
	cleanAttributes    bool
	baseURLFlag        string
	format             string
	outputDir          string
	stdout             bool
	timeout            time.Duration
	userAgent          string
	maxAttempt         int
	backoffInitial     time.Duration
	backoffMultiplier  float64
	backoffMax         time.Duration
	randomSeed         int64
	selectQuery        string
	printVersion       bool
)

// rootCmd is the base command; the actual work happens in extractCmd, kept
// separate so `readable` alone prints usage instead of requiring an input.
var rootCmd = &cobra.Command{
	Use:   "readable",
	Short: "Deterministic article-content extraction from HTML.",
	Long: `readable strips navigation, ads, and boilerplate from an HTML
document and renders the remaining article content as text, HTML,
Markdown, or JSON, using a fixed heuristic scoring pass (no ML, no
network calls beyond fetching the page itself).`,
	Run: func(cmd *cobra.Command, args []string) {
		if printVersion {
			fmt.Println(build.FullVersion())
			return
		}
		cmd.Help()
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <file-or-url>...",
	Short: "Extract article content from one or more local files or URLs.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := InitConfigWithError()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		telemetrySink := telemetry.NewStderrRecorder()
		if err := RunExtract(cfg, telemetrySink, args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().BoolVar(&stripUnlikelys, "strip-unlikelys", true, "remove subtrees matching the unlikely-candidate class/id pattern")
	rootCmd.PersistentFlags().BoolVar(&weightClasses, "weight-classes", true, "factor class/id scoring into candidate selection")
	rootCmd.PersistentFlags().BoolVar(&cleanConditionally, "clean-conditionally", true, "remove subtrees failing the conditional-acceptability check")
	rootCmd.PersistentFlags().BoolVar(&cleanAttributes, "clean-attributes", true, "strip style attributes (href/src rewriting depends only on --base-url)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "base URL used to resolve relative href/src in local-file input")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text, html, markdown, or json")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "directory extracted documents are written to")
	rootCmd.PersistentFlags().BoolVar(&stdout, "stdout", false, "write extracted content to stdout instead of --output-dir")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP fetch")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().IntVar(&maxAttempt, "max-attempt", 0, "maximum fetch attempts, including the first")
	rootCmd.PersistentFlags().DurationVar(&backoffInitial, "backoff-initial", 0, "delay before the first retry")
	rootCmd.PersistentFlags().Float64Var(&backoffMultiplier, "backoff-multiplier", 0, "multiplier applied to the backoff delay on each retry")
	rootCmd.PersistentFlags().DurationVar(&backoffMax, "backoff-max", 0, "cap on the backoff delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for backoff jitter (0 for current time)")
	rootCmd.PersistentFlags().StringVar(&selectQuery, "select", "", "diagnostic: print elements matching a CSS selector from the input and exit")
	rootCmd.Flags().BoolVar(&printVersion, "version", false, "print the build version and exit")

	rootCmd.AddCommand(extractCmd)
}

// InitConfig reads in config file and CLI flags, exiting the process on error.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in a config file (--config-file) if given,
// otherwise builds a Config from CLI flags, returning any error instead
// of exiting so error cases are testable.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault().
		WithStripUnlikelys(stripUnlikelys).
		WithWeightClasses(weightClasses).
		WithCleanConditionally(cleanConditionally).
		WithCleanAttributes(cleanAttributes).
		WithOutputDir(outputDir).
		WithOutputFormat(config.OutputFormat(format))

	if baseURLFlag != "" {
		parsed, err := url.Parse(baseURLFlag)
		if err != nil {
			return config.Config{}, fmt.Errorf("error parsing --base-url: %w", err)
		}
		configBuilder = configBuilder.WithBaseURL(parsed)
	}
	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}
	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}
	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}
	if backoffInitial > 0 {
		configBuilder = configBuilder.WithBackoffInitialDuration(backoffInitial)
	}
	if backoffMultiplier > 0 {
		configBuilder = configBuilder.WithBackoffMultiplier(backoffMultiplier)
	}
	if backoffMax > 0 {
		configBuilder = configBuilder.WithBackoffMaxDuration(backoffMax)
	}
	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	return configBuilder.Build()
}

// RunExtract fetches or reads every input in args, runs it through the
// readability engine, and writes the rendered result either to stdout or
// to a file under cfg.OutputDir(), one per input.
func RunExtract(cfg config.Config, telemetrySink telemetry.Sink, args []string, stdoutWriter *os.File) error {
	rateLimiter := limiter.NewConcurrentRateLimiter()
	rateLimiter.SetBaseDelay(cfg.BackoffInitialDuration())
	rateLimiter.SetRandomSeed(cfg.RandomSeed())

	htmlFetcher := fetcher.NewHtmlFetcher(telemetrySink)
	rule := mdconvert.NewRule(telemetrySink)

	for _, input := range args {
		if err := extractOne(cfg, telemetrySink, &htmlFetcher, rateLimiter, rule, input, stdoutWriter); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}
	return nil
}

func extractOne(
	cfg config.Config,
	telemetrySink telemetry.Sink,
	htmlFetcher fetcher.Fetcher,
	rateLimiter limiter.RateLimiter,
	rule mdconvert.ConvertRule,
	input string,
	stdoutWriter *os.File,
) error {
	body, sourceLabel, err := readInput(cfg, htmlFetcher, rateLimiter, input)
	if err != nil {
		return err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	if selectQuery != "" {
		dumpSelection(doc, selectQuery, stdoutWriter)
		return nil
	}

	meta := docmeta.Extract(doc)
	bodyNode := findBody(doc)
	if bodyNode.Parent != nil {
		bodyNode.Parent.RemoveChild(bodyNode)
	}

	start := time.Now()
	engine := readability.NewEngine(cfg.ReadabilityConfig())
	selected := engine.Parse(bodyNode)
	stats := engine.Stats()

	telemetrySink.RecordExtract(telemetry.NewExtractEvent(
		sourceLabel, stats.NodesVisited, stats.NodesRemoved, stats.CandidateCount, time.Since(start),
	))

	outputFormat := mdconvert.Format(cfg.OutputFormat())

	var contentHash string
	if outputFormat == mdconvert.FormatJSON {
		var buf strings.Builder
		if err := html.Render(&buf, selected); err == nil {
			contentHash, _ = hashutil.HashBytes([]byte(buf.String()), hashutil.HashAlgoBLAKE3)
		}
	}

	rendered, convErr := mdconvert.Render(rule, selected, meta, outputFormat, contentHash)
	if convErr != nil {
		return fmt.Errorf("rendering output: %w", convErr)
	}

	return writeOutput(cfg, sourceLabel, outputFormat, rendered, stdoutWriter)
}

// readInput resolves input as a URL (fetched politely through rateLimiter)
// or a local file path, returning its raw bytes and a stable label used
// both for telemetry and output naming.
func readInput(cfg config.Config, htmlFetcher fetcher.Fetcher, rateLimiter limiter.RateLimiter, input string) ([]byte, string, error) {
	parsed, err := url.Parse(input)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		body, readErr := os.ReadFile(input)
		if readErr != nil {
			return nil, "", fmt.Errorf("reading file: %w", readErr)
		}
		return body, input, nil
	}

	rateLimiter.SetCrawlDelay(parsed.Host, cfg.BackoffInitialDuration())
	delay := rateLimiter.ResolveDelay(parsed.Host)
	if delay > 0 {
		time.Sleep(delay)
	}

	retryParam := retry.NewRetryParam(
		cfg.BackoffInitialDuration(),
		cfg.BackoffInitialDuration()/10,
		cfg.RandomSeed(),
		cfg.MaxAttempt(),
		timeutil.NewBackoffParam(cfg.BackoffInitialDuration(), cfg.BackoffMultiplier(), cfg.BackoffMaxDuration()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	fetchParam := fetcher.NewFetchParam(*parsed, cfg.UserAgent())
	result, fetchErr := htmlFetcher.Fetch(ctx, fetchParam, retryParam)
	rateLimiter.MarkLastFetchAsNow(parsed.Host)
	if fetchErr != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", input, fetchErr)
	}
	return result.Body(), input, nil
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if body != nil {
		return body
	}
	return doc
}

// dumpSelection prints the text content of every element matching query,
// a diagnostic for inspecting what a CSS selector would pick up from the
// raw input before extraction runs.
func dumpSelection(doc *html.Node, query string, w *os.File) {
	q := goquery.NewDocumentFromNode(doc)
	q.Find(query).Each(func(i int, s *goquery.Selection) {
		fmt.Fprintf(w, "[%d] %s\n", i, strings.TrimSpace(s.Text()))
	})
}

func writeOutput(cfg config.Config, sourceLabel string, format mdconvert.Format, rendered []byte, stdoutWriter *os.File) error {
	if stdout || cfg.OutputDir() == "" {
		_, err := stdoutWriter.Write(rendered)
		return err
	}

	if err := fileutil.EnsureDir(cfg.OutputDir()); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	name := outputFileName(sourceLabel, format)
	path := filepath.Join(cfg.OutputDir(), name)
	return os.WriteFile(path, rendered, 0o644)
}

func outputFileName(sourceLabel string, format mdconvert.Format) string {
	ext := map[mdconvert.Format]string{
		mdconvert.FormatText:     "txt",
		mdconvert.FormatHTML:     "html",
		mdconvert.FormatMarkdown: "md",
		mdconvert.FormatJSON:     "json",
	}[format]

	if parsed, err := url.Parse(sourceLabel); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		canonical := urlutil.Canonicalize(*parsed)
		hash, _ := hashutil.HashBytes([]byte(canonical.String()), hashutil.HashAlgoSHA256)
		return fmt.Sprintf("%s-%s.%s", canonical.Host, hash[:12], ext)
	}

	base := filepath.Base(sourceLabel)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s.%s", base, ext)
}

func ResetFlags() {
	cfgFile = ""
	stripUnlikelys = true
	weightClasses = true
	cleanConditionally = true
	cleanAttributes = true
	baseURLFlag = ""
	format = "text"
	outputDir = "output"
	stdout = false
	timeout = 0
	userAgent = ""
	maxAttempt = 0
	backoffInitial = 0
	backoffMultiplier = 0
	backoffMax = 0
	randomSeed = 0
	selectQuery = ""
	printVersion = false
}

// Test helper functions to set flag values from tests.
func SetConfigFileForTest(path string)      { cfgFile = path }
func SetStripUnlikelysForTest(v bool)       { stripUnlikelys = v }
func SetWeightClassesForTest(v bool)        { weightClasses = v }
func SetCleanConditionallyForTest(v bool)   { cleanConditionally = v }
func SetCleanAttributesForTest(v bool)      { cleanAttributes = v }
func SetBaseURLForTest(v string)            { baseURLFlag = v }
func SetFormatForTest(v string)             { format = v }
func SetOutputDirForTest(v string)          { outputDir = v }
func SetStdoutForTest(v bool)               { stdout = v }
func SetTimeoutForTest(v time.Duration)     { timeout = v }
func SetUserAgentForTest(v string)          { userAgent = v }
func SetMaxAttemptForTest(v int)            { maxAttempt = v }
func SetBackoffInitialForTest(v time.Duration) { backoffInitial = v }
func SetBackoffMultiplierForTest(v float64) { backoffMultiplier = v }
func SetBackoffMaxForTest(v time.Duration)  { backoffMax = v }
func SetRandomSeedForTest(v int64)          { randomSeed = v }
func SetSelectQueryForTest(v string)        { selectQuery = v }
