package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	coarse    bool
	confirm   bool
	overwrite bool
	team      string
	note      string
	format    string
	output    string
)

func init() {
	rootCmd.AddCommand(healthCmd, stateCmd, seekCmd, playCmd, pauseCmd, liveCmd, zoomCmd, halfCmd, bookmarkCmd, reportCmd, metricsCmd)

	seekCmd.AddCommand(seekQuickCmd, seekNudgeCmd)
	seekNudgeCmd.Flags().BoolVar(&coarse, "coarse", false, "Step 30 seconds instead of 5")

	zoomCmd.AddCommand(zoomInCmd, zoomOutCmd)

	halfCmd.AddCommand(halfStartCmd, halfEndCmd, halfResetCmd)
	halfResetCmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the reset")

	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRmCmd, bookmarkClearCmd)
	bookmarkAddCmd.Flags().StringVar(&team, "team", "", "Team name or review option")
	bookmarkAddCmd.Flags().StringVar(&note, "note", "", "Free text note")
	bookmarkAddCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an event within 5 seconds")
	bookmarkClearCmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm removing every bookmark")

	reportCmd.AddCommand(reportPublishCmd)
	reportCmd.Flags().StringVar(&format, "format", "json", "json, yaml or msgpack")
	reportCmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the playhead, clocks and match configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/state", nil)
	},
}

var seekCmd = &cobra.Command{
	Use:   "seek <seconds|mm:ss>",
	Short: "Move the playhead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := seekBody(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/seek", body)
	},
}

var seekQuickCmd = &cobra.Command{
	Use:   "quick <0|45|90|45+5|90+5|90+10>",
	Short: "Jump to a preset position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/seek/quick/"+url.PathEscape(args[0]), nil)
	},
}

var seekNudgeCmd = &cobra.Command{
	Use:   "nudge <forward|back>",
	Short: "Step the playhead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := 1
		switch args[0] {
		case "forward", "+":
		case "back", "-":
			direction = -1
		default:
			return fmt.Errorf("unknown direction %q", args[0])
		}
		return performRequest(http.MethodPost, "/seek/nudge", map[string]any{"direction": direction, "coarse": coarse})
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start autoplay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/play", nil)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Stop autoplay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/pause", nil)
	},
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Jump to the live field time and start autoplay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/live", nil)
	},
}

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Change the timeline zoom level",
}

var zoomInCmd = &cobra.Command{
	Use:   "in",
	Short: "Zoom in one level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/zoom/in", nil)
	},
}

var zoomOutCmd = &cobra.Command{
	Use:   "out",
	Short: "Zoom out one level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/zoom/out", nil)
	},
}

var halfCmd = &cobra.Command{
	Use:   "half",
	Short: "Manage kickoffs and half ends",
}

var halfStartCmd = &cobra.Command{
	Use:   "start <first|second> <HH:MM>",
	Short: "Set a kickoff clock time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hour, minute, err := parseClock(args[1])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/halves/"+args[0]+"/start", map[string]int{"hour": hour, "minute": minute})
	},
}

var halfEndCmd = &cobra.Command{
	Use:   "end <first|second>",
	Short: "End a half at the current position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/halves/"+args[0]+"/end", nil)
	},
}

var halfResetCmd = &cobra.Command{
	Use:   "reset <first|second>",
	Short: "Clear a recorded half end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/halves/"+args[0]+"/reset?confirm="+strconv.FormatBool(confirm), nil)
	},
}

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"bm"},
	Short:   "Mark and manage match events",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <yellow|secondYellow|red|penalty|goal|substitution|important|custom>",
	Short: "Mark an event at the current position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"type": args[0], "selection": team, "note": note, "overwrite": overwrite}
		return performRequest(http.MethodPost, "/bookmarks", body)
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events in time order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/bookmarks", nil)
	},
}

var bookmarkRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/bookmarks/"+args[0], nil)
	},
}

var bookmarkClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every event",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/bookmarks/clear?confirm="+strconv.FormatBool(confirm), nil)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the match report",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/report?format=" + url.QueryEscape(format)
		if output == "" {
			return performRequest(http.MethodGet, endpoint, nil)
		}
		return downloadTo(endpoint, output)
	},
}

var reportPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send the report to the configured Slack channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/report/publish", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

// seekBody turns "600" or "47:30" into a seek request.
func seekBody(arg string) (map[string]any, error) {
	if m, s, ok := strings.Cut(arg, ":"); ok {
		minute, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("invalid minute %q", m)
		}
		second, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid second %q", s)
		}
		return map[string]any{"minute": minute, "second": second}, nil
	}
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q", arg)
	}
	return map[string]any{"seconds": seconds}, nil
}

func parseClock(arg string) (int, int, error) {
	h, m, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", arg)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q", h)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute %q", m)
	}
	return hour, minute, nil
}

func performRequest(method, endpoint string, payload any) error {
	resp, err := send(method, endpoint, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func send(method, endpoint string, payload any) (*http.Response, error) {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

// downloadTo saves the response body of endpoint to path.
func downloadTo(endpoint, path string) error {
	resp, err := send(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server answered %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %d bytes to %s (export %s)\n", n, path, resp.Header.Get("X-Export-ID"))
	return nil
}
