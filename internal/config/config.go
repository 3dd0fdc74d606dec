package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	SnippetPath   string            `mapstructure:"path"`
	Format        string            `mapstructure:"format"`
	Output        string            `mapstructure:"output"`
	Links         map[string]string `mapstructure:"links"`
	Strict        bool              `mapstructure:"strict"`
	ColorBold     string            `mapstructure:"color_bold"`
	ColorItalic   string            `mapstructure:"color_italic"`
	ColorEmphasis string            `mapstructure:"color_emphasis"`
	ColorLink     string            `mapstructure:"color_link"`
	ColorHeader   string            `mapstructure:"color_header"`
	ColorBorder   string            `mapstructure:"color_border"`
	ColorCursor   string            `mapstructure:"color_cursor"`
	ColorSelected string            `mapstructure:"color_selected"`
	ColorDim      string            `mapstructure:"color_dim"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("path", ".")
	viper.SetDefault("format", "ansi")
	viper.SetDefault("output", "print")
	viper.SetDefault("links", map[string]string{})
	viper.SetDefault("strict", false)
	viper.SetDefault("color_bold", "212")     // Pink
	viper.SetDefault("color_italic", "36")    // Cyan
	viper.SetDefault("color_emphasis", "220") // Yellow
	viper.SetDefault("color_link", "33")      // Blue
	viper.SetDefault("color_header", "36")    // Cyan
	viper.SetDefault("color_border", "240")   // Gray
	viper.SetDefault("color_cursor", "212")   // Pink
	viper.SetDefault("color_selected", "236") // Dark gray
	viper.SetDefault("color_dim", "241")      // Gray

	viper.SetConfigName("snipmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "snipmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SNIPMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the snippet path with tilde expansion
func GetPath() string {
	path := viper.GetString("path")
	return expandTilde(path)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetFormat returns the render format
func GetFormat() string {
	return viper.GetString("format")
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetLinks returns the link target table
func GetLinks() map[string]string {
	return viper.GetStringMapString("links")
}

// GetStrict returns whether warnings are treated as failures
func GetStrict() bool {
	return viper.GetBool("strict")
}

// GetColorBold returns the color for bold highlight markers
func GetColorBold() string {
	return viper.GetString("color_bold")
}

// GetColorItalic returns the color for italic highlight markers
func GetColorItalic() string {
	return viper.GetString("color_italic")
}

// GetColorEmphasis returns the color for emphasis highlight markers
func GetColorEmphasis() string {
	return viper.GetString("color_emphasis")
}

// GetColorLink returns the color for link anchors
func GetColorLink() string {
	return viper.GetString("color_link")
}

// GetColorHeader returns the color for TUI headers
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorBorder returns the color for TUI borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorCursor returns the color for the TUI cursor
func GetColorCursor() string {
	return viper.GetString("color_cursor")
}

// GetColorSelected returns the background color for the selected row
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// GetColorDim returns the color for dimmed TUI text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// SetFormat sets the render format at runtime
func SetFormat(format string) {
	viper.Set("format", format)
	C.Format = format
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetPath sets path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.SnippetPath = path
}

// SetStrict sets strict mode at runtime
func SetStrict(strict bool) {
	viper.Set("strict", strict)
	C.Strict = strict
}
