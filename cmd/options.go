package cmd

// Options holds the shared command-line options for the stabwatch CLI.
type Options struct {
	Format      string // Output format (table, json, markdown)
	OutputDir   string // Where spreadsheet artifacts are written
	FoldersPath string // Folder configuration file override
	NoArtifacts bool   // Skip writing the xlsx artifacts
	Verbosity   int
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithOutputDir sets the artifact output directory.
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithFoldersPath overrides the folder configuration file location.
func WithFoldersPath(path string) Option {
	return func(o *Options) {
		o.FoldersPath = path
	}
}

// WithNoArtifacts disables writing the xlsx artifacts.
func WithNoArtifacts(skip bool) Option {
	return func(o *Options) {
		o.NoArtifacts = skip
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}
