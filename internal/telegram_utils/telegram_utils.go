package telegram_utils

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"
)

const MaxTelegramMessageLength = 4096

// markdownTags are checked in order so "```" wins over "`".
var markdownTags = []string{"```", "`", "*", "_"}

// ReplyMarkdown sends text as Markdown, falling back to plain text when
// Telegram rejects the formatting. Long text goes out in several messages.
func ReplyMarkdown(ctx context.Context, c tele.Context, text string) error {
	for _, chunk := range SplitMessage(text, MaxTelegramMessageLength) {
		err := c.Reply(FixMarkdown(chunk), &tele.SendOptions{ParseMode: tele.ModeMarkdown})
		if err != nil {
			slog.WarnContext(ctx, "Markdown reply rejected, retrying as plain text", "error", err)
			err = c.Reply(chunk, &tele.SendOptions{ParseMode: tele.ModeDefault})
		}
		if err != nil {
			slog.ErrorContext(ctx, "Error sending reply", "error", err)
			return err
		}
	}
	return nil
}

// SplitMessage cuts text into pieces of at most limit runes, preferring to
// break after a newline.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		if idx := lastNewline(runes[:limit]); idx > 0 {
			cut = idx + 1
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}

// GetUnclosedTag returns the Markdown tag left open at the end of text, if any.
func GetUnclosedTag(text string) string {
	open := ""
	for i := 0; i < len(text); {
		if open == "" && text[i] == '\\' {
			i += 2
			continue
		}
		if open != "" {
			if strings.HasPrefix(text[i:], open) {
				i += len(open)
				open = ""
				continue
			}
			i++
			continue
		}
		matched := false
		for _, tag := range markdownTags {
			if strings.HasPrefix(text[i:], tag) {
				open = tag
				i += len(tag)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return open
}

func FixMarkdown(text string) string {
	return text + GetUnclosedTag(text)
}
