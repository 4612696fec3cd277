package slidescript

import "strings"

// Keyword tables for slide-type inference. Vietnamese phrases are kept for
// the headings the upstream models commonly emit.
var (
	titleKeywords      = []string{"introduction", "giới thiệu", "welcome", "lesson title"}
	agendaKeywords     = []string{"agenda", "nội dung bài học", "table of contents", "outline"}
	objectivesKeywords = []string{"objective", "mục tiêu", "learning outcome"}
	summaryKeywords    = []string{"summary", "tóm tắt", "tổng kết", "recap", "key takeaway"}
	qaKeywords         = []string{"q&a", "question", "câu hỏi", "discussion", "thảo luận"}
	sectionKeywords    = []string{"part ", "phần ", "section ", "chương "}
)

// inferSlideType categorizes a slide whose type is missing or generic,
// from its lower-cased title and position. Unmatched slides stay "content".
func inferSlideType(title string, index int) string {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, agendaKeywords):
		return TypeAgenda
	case containsAny(lower, objectivesKeywords):
		return TypeObjectives
	case containsAny(lower, summaryKeywords):
		return TypeSummary
	case containsAny(lower, qaKeywords):
		return TypeQA
	case index == 0 && containsAny(lower, titleKeywords):
		return TypeTitle
	case strings.HasPrefix(lower, sectionKeywords[0]), strings.HasPrefix(lower, sectionKeywords[1]),
		strings.HasPrefix(lower, sectionKeywords[2]), strings.HasPrefix(lower, sectionKeywords[3]):
		return TypeSectionHeader
	}
	return TypeContent
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
