package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Width of the clip progress bar, in cells
	ProgressWidth int `env:"SPEECHCLIP_PROGRESS_WIDTH" envDefault:"40"`

	// Show the pending clips under the status panel
	ShowQueue bool `env:"SPEECHCLIP_SHOW_QUEUE" envDefault:"true"`

	EnableMouse bool
}
