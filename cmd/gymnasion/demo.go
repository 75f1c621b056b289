package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var demoLines = []string{
	"I see a dark forest.",
	"The mountain towers above the valley.",
	"A bird sings in the ancient tree.",
	"The wolf hunts in the moonlight.",
	"I dream of the endless sea.",
}

type demoReply struct {
	Response      string   `json:"response"`
	BanishedWords []string `json:"banished_words"`
	ToImitate     string   `json:"to_imitate"`
	PoemLength    int      `json:"poem_length"`
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Drive a running server with a few sample lines",
	Long:  `Posts five sample lines to a running "gymnasion serve" and prints each answer with the session state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("url")
		pause, _ := cmd.Flags().GetDuration("pause")
		mode, _ := cmd.Flags().GetString("mode")

		jar, err := cookiejar.New(nil)
		if err != nil {
			return err
		}
		client := &http.Client{Jar: jar, Timeout: 10 * time.Second}
		return runDemo(cmd.Context(), cmd.OutOrStdout(), client, baseURL, mode, pause)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("url", "http://127.0.0.1:8080", "Base URL of the server")
	demoCmd.Flags().String("mode", "", "Mode sent with each line (server default when empty)")
	demoCmd.Flags().Duration("pause", time.Second, "Pause between lines")
}

// runDemo posts demoLines with a shared cookie jar so they form one session.
func runDemo(ctx context.Context, w io.Writer, client *http.Client, baseURL, mode string, pause time.Duration) error {
	baseURL = strings.TrimSuffix(baseURL, "/")

	fmt.Fprintln(w, "Gymnasion Demo")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	for i, line := range demoLines {
		fmt.Fprintf(w, "\n%d. Input: %q\n", i+1, line)

		reply, err := postLine(ctx, client, baseURL, line, mode)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}

		fmt.Fprintf(w, "   Gymnasion: %s\n", reply.Response)
		if len(reply.BanishedWords) > 0 {
			fmt.Fprintf(w, "   Banished: %s\n", strings.Join(reply.BanishedWords, ", "))
		}
		if reply.ToImitate != "" {
			fmt.Fprintf(w, "   Imitating: %s\n", reply.ToImitate)
		}
		fmt.Fprintf(w, "   Words written: %d\n", reply.PoemLength)

		if pause > 0 && i < len(demoLines)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
	fmt.Fprintf(w, "Demo completed! Open %s in your browser to keep writing.\n", baseURL)
	return nil
}

func postLine(ctx context.Context, client *http.Client, baseURL, text, mode string) (demoReply, error) {
	body, err := json.Marshal(map[string]string{"text": text, "mode": mode})
	if err != nil {
		return demoReply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return demoReply{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return demoReply{}, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return demoReply{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var reply demoReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return demoReply{}, fmt.Errorf("decode reply: %w", err)
	}
	return reply, nil
}
