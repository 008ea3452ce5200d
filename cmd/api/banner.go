package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"

	"papertrade/internal/config"
	"papertrade/internal/logger"
)

// printBanner displays the startup banner to stderr.
func printBanner(cfg *config.Config, backend string, stocks int) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 60
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` ___  __ _ _ __   ___ _ __| |_ _ __ __ _  __| | ___`,
		`| '_ \/ _' | '_ \ / _ \ '__| __| '__/ _' |/ _' |/ _ \`,
		`| |_) | (_| | |_) |  __/ |  | |_| | | (_| | (_| |  __/`,
		`| .__/\__,_| .__/ \___|_|   \__|_|  \__,_|\__,_|\___|`,
		`|_|        |_|`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Simulated Stock Trading%s\n\n%s\n\n", textColor, banner.ColorReset, hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Environment", cfg.Env},
		{"Service URL", "http://localhost:" + cfg.Port},
		{"Storage", backend},
		{"Notifications", cfg.Notify.Backend},
		{"Stocks", fmt.Sprintf("%d", stocks)},
		{"Opening cash", cfg.InitialBalance.StringFixed(2)},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	logger.Get().Infow("Application started",
		"environment", cfg.Env,
		"port", cfg.Port,
		"storage", backend,
		"stocks", stocks,
	)
}

// printShutdownBanner displays the shutdown banner to stderr.
func printShutdownBanner() {
	hr := banner.ColorCyan + strings.Repeat("═", 36) + banner.ColorReset
	fmt.Fprintf(os.Stderr, "\n%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  PAPERTRADE SHUTTING DOWN%s\n", banner.ColorBold+banner.ColorWhite, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n\n", hr)
}
