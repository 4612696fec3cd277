package slidescript

import (
	"regexp"
	"strings"
)

// Legacy Markdown format: slides delimited by a `**Slide N: Title**` header,
// with named sub-fields in either bracket convention (`[Content]:` or
// `Content:`).
var (
	slideHeaderRe = regexp.MustCompile(`\*\*Slide\s+(\d+)\s*:\s*(.+?)\*\*`)

	contentFieldRe     = regexp.MustCompile(`(?is)(?:\[Content\]|Content)\s*:\s*(.*?)(?:(?:\[Visual Idea\]|Visual Idea|\[Speaker Notes?\]|Speaker Notes?)\s*:|$)`)
	visualIdeaFieldRe  = regexp.MustCompile(`(?is)(?:\[Visual Idea\]|Visual Idea)\s*:\s*(.*?)(?:(?:\[Content\]|Content|\[Speaker Notes?\]|Speaker Notes?)\s*:|$)`)
	speakerNoteFieldRe = regexp.MustCompile(`(?is)(?:\[Speaker Notes?\]|Speaker Notes?)\s*:\s*(.*?)(?:(?:\[Content\]|Content|\[Visual Idea\]|Visual Idea)\s*:|$)`)
)

func slidesFromMarkdown(script string) []Slide {
	headers := slideHeaderRe.FindAllStringSubmatchIndex(script, -1)
	if len(headers) == 0 {
		return nil
	}

	slides := make([]Slide, 0, len(headers))
	for i, loc := range headers {
		title := strings.TrimSpace(script[loc[4]:loc[5]])

		bodyStart := loc[1]
		bodyEnd := len(script)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		body := script[bodyStart:bodyEnd]

		slides = append(slides, Slide{
			Title:       title,
			Content:     matchField(contentFieldRe, body),
			VisualIdea:  matchField(visualIdeaFieldRe, body),
			SpeakerNote: matchField(speakerNoteFieldRe, body),
		})
	}
	return slides
}

func matchField(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "*"))
}
