package slidescript

import (
	"fmt"
	"strings"
)

// slidesFromJSON accepts either {"slides":[...]} or a bare top-level array.
func slidesFromJSON(root any) ([]Slide, bool) {
	var arr []any
	switch v := root.(type) {
	case map[string]any:
		raw, ok := v["slides"].([]any)
		if !ok {
			return nil, false
		}
		arr = raw
	case []any:
		arr = v
	default:
		return nil, false
	}
	if len(arr) == 0 {
		return nil, false
	}

	slides := make([]Slide, 0, len(arr))
	for _, item := range arr {
		obj, _ := item.(map[string]any)
		slides = append(slides, Slide{
			SlideType:   strField(obj, "slideType", "slide_type", "type"),
			Title:       strField(obj, "title"),
			Content:     contentField(obj),
			VisualIdea:  strField(obj, "visualIdea", "visual_idea"),
			SpeakerNote: strField(obj, "speakerNote", "speaker_note", "speakerNotes", "speaker_notes"),
		})
	}
	return slides, true
}

// slidesFromOutline reinterprets an outline document (an earlier pipeline
// stage's shape, sometimes returned where slides were expected) as one
// synthesized slide per outline element, in fixed order: title, agenda,
// objectives, section headers with their subsections, summary, Q&A.
func slidesFromOutline(root any) ([]Slide, bool) {
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, false
	}

	var slides []Slide

	if title := strField(obj, "title"); title != "" {
		slides = append(slides, Slide{
			SlideType:   TypeTitle,
			Title:       title,
			SpeakerNote: fmt.Sprintf("Welcome everyone. Today's lesson is %s.", title),
		})
	}
	if agenda := listField(obj, "agenda"); len(agenda) > 0 {
		slides = append(slides, Slide{
			SlideType:   TypeAgenda,
			Title:       "Agenda",
			Content:     strings.Join(agenda, "\n"),
			SpeakerNote: "Here is what we will cover in this lesson.",
		})
	}
	if objectives := listField(obj, "objectives"); len(objectives) > 0 {
		slides = append(slides, Slide{
			SlideType:   TypeObjectives,
			Title:       "Learning Objectives",
			Content:     strings.Join(objectives, "\n"),
			SpeakerNote: "By the end of this lesson you should be able to meet these objectives.",
		})
	}

	if sections, ok := obj["sections"].([]any); ok {
		for _, rawSection := range sections {
			section, ok := rawSection.(map[string]any)
			if !ok {
				continue
			}
			sectionTitle := strField(section, "title", "name")
			slides = append(slides, Slide{
				SlideType:   TypeSectionHeader,
				Title:       sectionTitle,
				SpeakerNote: fmt.Sprintf("Let's move on to %s.", sectionTitle),
			})
			if subsections, ok := section["subsections"].([]any); ok {
				for _, rawSub := range subsections {
					switch sub := rawSub.(type) {
					case map[string]any:
						subTitle := strField(sub, "title", "name")
						slides = append(slides, Slide{
							SlideType:   TypeContent,
							Title:       subTitle,
							Content:     contentField(sub),
							VisualIdea:  strField(sub, "visualIdea", "visual_idea"),
							SpeakerNote: fmt.Sprintf("In this part we look at %s.", subTitle),
						})
					case string:
						slides = append(slides, Slide{
							SlideType:   TypeContent,
							Title:       sub,
							SpeakerNote: fmt.Sprintf("In this part we look at %s.", sub),
						})
					}
				}
			}
		}
	}

	if summary := listField(obj, "summary"); len(summary) > 0 {
		slides = append(slides, Slide{
			SlideType:   TypeSummary,
			Title:       "Summary",
			Content:     strings.Join(summary, "\n"),
			SpeakerNote: "Let's recap the key points of today's lesson.",
		})
	}
	if questions := listField(obj, "reviewQuestions"); len(questions) > 0 {
		slides = append(slides, Slide{
			SlideType:   TypeQA,
			Title:       "Q&A",
			Content:     strings.Join(questions, "\n"),
			SpeakerNote: "Take a moment to think about these review questions.",
		})
	}

	if len(slides) == 0 {
		return nil, false
	}
	return slides, true
}

func strField(obj map[string]any, keys ...string) string {
	if obj == nil {
		return ""
	}
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// contentField accepts content as either a single string or a list of
// bullet strings, joined with newlines.
func contentField(obj map[string]any) string {
	if obj == nil {
		return ""
	}
	for _, key := range []string{"content", "bullets", "points"} {
		switch v := obj[key].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case []any:
			if joined := joinAny(v); joined != "" {
				return joined
			}
		}
	}
	return ""
}

func listField(obj map[string]any, key string) []string {
	switch v := obj[key].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func joinAny(items []any) string {
	var parts []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}
