package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/freqgraphs/internal/site"
)

// Default server base URL; can override with FREQGRAPHS_SERVER env var or --server flag.
const defaultServer = "http://localhost:8080"

type client struct {
	baseURL string
	http    *http.Client
}

func newRootCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	c := &client{}
	cmd := &cobra.Command{
		Use:          "freqgraphs-client",
		Short:        "Probe a running frequency graphs test site",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.baseURL = defaultServer
			if env := os.Getenv("FREQGRAPHS_SERVER"); env != "" {
				c.baseURL = env
			}
			if server != "" {
				c.baseURL = server
			}
			c.baseURL = strings.TrimRight(c.baseURL, "/")
			c.http = &http.Client{Timeout: timeout}
		},
	}
	cmd.PersistentFlags().StringVar(&server, "server", "", "server base URL (e.g. http://localhost:8080)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(&cobra.Command{
		Use:   "load",
		Short: "Load the site page, starting a new page session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, _, err := c.get(cmd.Context(), "/")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page loaded, session %s\n", resp.Header.Get("X-Session-ID"))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Show the notifier of the most recent page session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, body, err := c.get(cmd.Context(), "/debug/notifier")
			if err != nil {
				return err
			}
			var snap site.Snapshot
			if err := json.Unmarshal(body, &snap); err != nil {
				return fmt.Errorf("decode server response: %w", err)
			}
			enc, _ := json.MarshalIndent(snap, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(enc))
			return nil
		},
	})
	return cmd
}

func (c *client) get(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, body, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
