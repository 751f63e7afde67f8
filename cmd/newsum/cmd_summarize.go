package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"newsum/internal/clipboard"
	"newsum/internal/preview"
	"newsum/internal/summarizer"
	"newsum/internal/summary"
	"newsum/internal/view"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// copier is swapped in tests.
var copier view.Copier = clipboard.System{}

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize a news article",
		Long: `Send the article URL to the summarization API and print the summary
at the chosen length (100, 200 or 300 characters), wrapped to --width.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			levelFlag, _ := cmd.Flags().GetInt("level")
			width, _ := cmd.Flags().GetInt("width")
			all, _ := cmd.Flags().GetBool("all")
			doCopy, _ := cmd.Flags().GetBool("copy")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if width <= 0 {
				width = cfg.Display.ReflowWidth
			}
			level := summary.Level(cfg.Display.DefaultLevel)
			if cmd.Flags().Changed("level") {
				level = summary.Level(levelFlag)
			}
			if !level.Valid() {
				return fmt.Errorf("%w: %d (use 100, 200 or 300)", summary.ErrUnknownLevel, levelFlag)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			articleURL := args[0]

			result, err := summarizer.NewClientFromConfig(cfg).Summarize(ctx, articleURL)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), summarizer.MessagePrefix+summarizer.UserMessage(err))
				return fmt.Errorf("%w: %v", errReported, err)
			}

			var article *preview.Article
			if f := preview.NewFetcherFromConfig(cfg); f != nil {
				pctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Preview.WaitMillis)*time.Millisecond)
				if article, err = f.Fetch(pctx, articleURL); err != nil {
					log.Printf("[Preview] skipped: %v", err)
				}
				cancel()
			}

			card := view.NewCard(result, width)
			card.Select(level)

			if jsonOut {
				return writeJSON(cmd, card, article, all)
			}

			out := cmd.OutOrStdout()
			if all {
				for _, l := range summary.Levels() {
					card.Select(l)
					fmt.Fprintln(out, renderCard(card, article))
				}
				card.Select(level)
			} else {
				fmt.Fprintln(out, renderCard(card, article))
			}

			if doCopy {
				// Copy failures are reported but never fail the command.
				if err := card.Copy(ctx, copier); err == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), view.CopiedMessage)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("level", int(summary.DefaultLevel), "Summary length preset: 100, 200 or 300")
	cmd.Flags().Int("width", 0, "Wrap width in characters (default from config, 30)")
	cmd.Flags().Bool("all", false, "Print all three presets")
	cmd.Flags().Bool("copy", false, "Copy the displayed summary to the clipboard")
	return cmd
}

func renderCard(card *view.Card, article *preview.Article) string {
	var b strings.Builder
	if article != nil {
		if article.SiteName != "" {
			b.WriteString(mutedStyle.Render(article.SiteName))
			b.WriteString("\n")
		}
		if article.Title != "" {
			b.WriteString(titleStyle.Render(article.Title))
			b.WriteString("\n\n")
		}
	}
	b.WriteString(card.Content())
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(card.Level().Label()))
	return cardStyle.Render(b.String())
}

type jsonVariant struct {
	Level   int    `json:"level"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

type jsonOutput struct {
	ID       string        `json:"id"`
	Width    int           `json:"width"`
	Title    string        `json:"title,omitempty"`
	SiteName string        `json:"site_name,omitempty"`
	Variants []jsonVariant `json:"variants"`
}

func writeJSON(cmd *cobra.Command, card *view.Card, article *preview.Article, all bool) error {
	out := jsonOutput{ID: card.Summary().ID, Width: card.Width()}
	if article != nil {
		out.Title = article.Title
		out.SiteName = article.SiteName
	}
	levels := []summary.Level{card.Level()}
	if all {
		levels = summary.Levels()
	}
	for _, l := range levels {
		c := view.NewCard(card.Summary(), card.Width())
		c.Select(l)
		out.Variants = append(out.Variants, jsonVariant{Level: int(l), Label: l.Label(), Content: c.Content()})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
