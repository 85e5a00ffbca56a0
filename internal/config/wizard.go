package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// layoutChoices is the order layouts are offered in the wizard.
var layoutChoices = []string{"force", "td", "lr", "radialout", "zout"}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to archmap! Let's configure the report server and viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error { _, err := parsePort(s); return err },
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = parsePort(portStr)
	cfg.Client.URL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	corsPrompt := promptui.Select{
		Label: "Allow browser viewers from any origin?",
		Items: []string{"no, localhost only", "yes, any origin (dev mode)"},
	}
	corsIdx, _, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}
	cfg.Server.AllowAllOrigins = corsIdx == 1

	layoutPrompt := promptui.Select{
		Label: "Default graph layout",
		Items: layoutChoices,
	}
	_, layout, err := layoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("layout selection: %w", err)
	}
	cfg.View.DefaultLayout = layout

	urlPrompt := promptui.Prompt{
		Label:   "Report server URL used by push/watch",
		Default: cfg.Client.URL,
	}
	url, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("client url: %w", err)
	}
	cfg.Client.URL = strings.TrimRight(strings.TrimSpace(url), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// parsePort parses a TCP port number entered by the user.
func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port must be between 1 and 65535")
	}
	return n, nil
}
