package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"instagram_content_ai/pkg/clipboard"
	"instagram_content_ai/pkg/content"
	"instagram_content_ai/pkg/ui"
)

// runHeadless generates once and prints the result, for scripts and pipes.
func runHeadless(ctx context.Context, requester *content.Requester, opts options, topic string, stdout, stderr io.Writer) int {
	req := content.Request{Topic: topic}

	if opts.imagePath != "" {
		img, err := content.LoadImage(opts.imagePath)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: ignoring image: %v\n", err)
		} else {
			req.Image = img
			fmt.Fprintf(stderr, "Image: %s\n", img.Describe())
		}
	}

	res, err := requester.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, content.ErrEmptyTopic) {
			fmt.Fprintln(stderr, ui.EmptyTopicWarning)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.html {
		writeHTML(stdout, res)
		return 0
	}
	writePlain(stdout, res)
	return 0
}

func writePlain(w io.Writer, res content.Result) {
	fmt.Fprintf(w, "%s\n\nCaption:\n%s\n\nHashtags:\n%s\n", ui.SuccessBanner, res.Caption, res.Hashtags)
}

func writeHTML(w io.Writer, res content.Result) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<textarea id=\"captionText\">%s</textarea>\n", clipboard.EscapeHTML(res.Caption))
	fmt.Fprintf(&sb, "<textarea id=\"hashtagText\">%s</textarea>\n", clipboard.EscapeHTML(res.Hashtags))
	_, _ = io.WriteString(w, sb.String())
}
