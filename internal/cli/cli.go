// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mwarner/fsprobe/internal/aggregate"
	"github.com/mwarner/fsprobe/internal/config"
	"github.com/mwarner/fsprobe/internal/filetype"
	"github.com/mwarner/fsprobe/internal/inventory"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// ProbeService answers single-path queries for the CLI.
type ProbeService interface {
	TypeName(loc string, short bool) string
	LastModifiedDate(loc string) string
	FileCount(loc string) (int64, error)
	TotalSize(loc string) (int64, error)
	Permissions(loc string) (readable, writable, executable bool)
}

// ScanService runs full inventory scans for the CLI.
type ScanService interface {
	Scan(ctx context.Context, cfg *config.Config) ([]inventory.Summary, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc ConfigService
	ProbeSvc  ProbeService
	ScanSvc   ScanService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) {},
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error)  { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error  { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string             { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config  { return config.DefaultConfig() }

// defaultProbeService wraps the filetype and aggregate defaults.
type defaultProbeService struct{}

func (d *defaultProbeService) TypeName(loc string, short bool) string {
	return filetype.TypeName(loc, short)
}
func (d *defaultProbeService) LastModifiedDate(loc string) string {
	return filetype.LastModifiedDate(loc)
}
func (d *defaultProbeService) FileCount(loc string) (int64, error) {
	return aggregate.FileCountOf(loc)
}
func (d *defaultProbeService) TotalSize(loc string) (int64, error) {
	return aggregate.TotalSizeOf(loc)
}
func (d *defaultProbeService) Permissions(loc string) (bool, bool, bool) {
	return filetype.IsReadable(loc), filetype.IsWritable(loc), filetype.IsExecutable(loc)
}

// defaultScanService scans the configured roots into the inventory store.
type defaultScanService struct{}

func (d *defaultScanService) Scan(ctx context.Context, cfg *config.Config) ([]inventory.Summary, error) {
	store, err := inventory.OpenStore(ctx, config.ExpandPath(cfg.DatabasePath))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	scanner := inventory.NewOSScanner(cfg.Exclude)
	var summaries []inventory.Summary
	for _, root := range cfg.Roots {
		root = config.ExpandPath(root)
		records, err := scanner.Scan(root)
		if err != nil {
			return summaries, err
		}
		if err := store.SaveRecords(ctx, records); err != nil {
			return summaries, err
		}
		summary, err := scanner.Summarize(root)
		if err != nil {
			return summaries, err
		}
		if err := store.SaveSummary(ctx, summary); err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) probeSvc() ProbeService {
	if c.ProbeSvc != nil {
		return c.ProbeSvc
	}
	return &defaultProbeService{}
}

func (c *CLI) scanSvc() ScanService {
	if c.ScanSvc != nil {
		return c.ScanSvc
	}
	return &defaultScanService{}
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'fsprobe help' for usage.")
		return
	}

	switch c.Args[1] {
	case "type":
		c.ShowType()
	case "count":
		c.ShowCount()
	case "size":
		c.ShowSize()
	case "date":
		c.ShowDate()
	case "perms":
		c.ShowPerms()
	case "scan":
		c.RunScan()
	case "init":
		c.InitConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "fsprobe v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `fsprobe - Filesystem Introspection Tool

Usage:
  fsprobe                      Launch interactive browser
  fsprobe type <path> [--long] Show entry type (l, f, d, s)
  fsprobe count <path>         Show cumulative file count
  fsprobe size <path>          Show cumulative byte size
  fsprobe date <path>          Show last-modified date of a file (UTC)
  fsprobe perms <path>         Show read/write/execute accessibility
  fsprobe scan                 Scan configured roots into the inventory db
  fsprobe init                 Create default config file
  fsprobe version, -v          Show version
  fsprobe help, -h             Show this help

Config: ~/.fsprobe/config.yaml`)
}

// pathArg returns the path argument for single-path commands.
func (c *CLI) pathArg() (string, bool) {
	if len(c.Args) < 3 {
		fmt.Fprintf(c.Err, "Usage: fsprobe %s <path>\n", c.Args[1])
		c.Exit(1)
		return "", false
	}
	return c.Args[2], true
}

// ShowType prints the classification of a path.
func (c *CLI) ShowType() {
	loc, ok := c.pathArg()
	if !ok {
		return
	}
	short := true
	for _, arg := range c.Args[3:] {
		if arg == "--long" {
			short = false
		}
	}

	name := c.probeSvc().TypeName(loc, short)
	if name == "" {
		// Absence is a distinct outcome, not a special file.
		fmt.Fprintf(c.Err, "%s: no such entry\n", loc)
		c.Exit(1)
		return
	}
	fmt.Fprintln(c.Out, name)
}

// ShowCount prints the cumulative file count under a path.
func (c *CLI) ShowCount() {
	loc, ok := c.pathArg()
	if !ok {
		return
	}
	count, err := c.probeSvc().FileCount(loc)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%d\n", count)
}

// ShowSize prints the cumulative byte size under a path.
func (c *CLI) ShowSize() {
	loc, ok := c.pathArg()
	if !ok {
		return
	}
	size, err := c.probeSvc().TotalSize(loc)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%d (%s)\n", size, inventory.FormatSize(size))
}

// ShowDate prints the UTC last-modified date of a file.
func (c *CLI) ShowDate() {
	loc, ok := c.pathArg()
	if !ok {
		return
	}
	date := c.probeSvc().LastModifiedDate(loc)
	if date == "" {
		fmt.Fprintf(c.Err, "%s: not a file\n", loc)
		c.Exit(1)
		return
	}
	fmt.Fprintln(c.Out, date)
}

// ShowPerms prints the accessibility of a path.
func (c *CLI) ShowPerms() {
	loc, ok := c.pathArg()
	if !ok {
		return
	}
	readable, writable, executable := c.probeSvc().Permissions(loc)
	mark := func(held bool, letter string) string {
		if held {
			return c.green(letter)
		}
		return c.gray("-")
	}
	fmt.Fprintf(c.Out, "%s%s%s\n", mark(readable, "r"), mark(writable, "w"), mark(executable, "x"))
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	if err := svc.Save(svc.DefaultConfig()); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// RunScan scans all configured roots into the inventory database.
func (c *CLI) RunScan() {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Scanning %d root(s)...\n", c.cyan("=>"), len(cfg.Roots))

	summaries, err := c.scanSvc().Scan(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintln(c.Out)
	var totalFiles, totalBytes int64
	for _, s := range summaries {
		fmt.Fprintf(c.Out, "  %s %s %s %d files\n",
			c.green("*"),
			s.Root,
			c.yellow(inventory.FormatSize(s.TotalSize)),
			s.FileCount)
		totalFiles += s.FileCount
		totalBytes += s.TotalSize
	}

	fmt.Fprintln(c.Out)
	fmt.Fprintf(c.Out, "Done: %s files, %s\n",
		c.green(fmt.Sprintf("%d", totalFiles)),
		c.yellow(inventory.FormatSize(totalBytes)))
}
