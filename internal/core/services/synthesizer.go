package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Synthesis limits.
const (
	// SummaryLength is the rune budget of a summarised context.
	SummaryLength = 500

	// MaxSteps caps the steps listed in a procedural answer.
	MaxSteps = 10

	// confidenceSaturation is the result count at which confidence stops growing.
	confidenceSaturation = 5
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
	stepMarker       = regexp.MustCompile(`\b\d+\.[ \t]+`)
	sequencePhrase   = regexp.MustCompile(
		`(?i)\b(?:first|second|third|next|then|finally|primeiro|segundo|terceiro|em seguida|depois|finalmente)\b[^.!?\n]*[.!?]?`)

	explanationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:because|porque)[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)(?:due to|devido a)[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)(?:the reason|a razão)[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)(?:this happens|isso acontece)[^.!?]+[.!?]`),
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:\d{2}`),
		regexp.MustCompile(`\d{1,2}h\d{0,2}`),
		regexp.MustCompile(`(?i)\b(?:segunda|terça|quarta|quinta|sexta|sábado|domingo)`),
		regexp.MustCompile(`(?i)\b(?:janeiro|fevereiro|março|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:endereço|address)[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)(?:localizado|located)[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)fica[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)situado[^.!?]+[.!?]`),
	}
)

// Strategy builds the answer text for one query type from retrieved context.
type Strategy interface {
	Respond(query, context string) string
}

// strategyFor selects the strategy for a query type.
func strategyFor(queryType domain.QueryType) Strategy {
	switch queryType {
	case domain.QueryTypeProcedural:
		return proceduralStrategy{}
	case domain.QueryTypeExplanatory:
		return explanatoryStrategy{}
	case domain.QueryTypeTemporal:
		return temporalStrategy{}
	case domain.QueryTypeLocational:
		return locationalStrategy{}
	default:
		return summaryStrategy{}
	}
}

// Synthesize answers query from context according to its type.
func Synthesize(query, context string, queryType domain.QueryType) string {
	return strategyFor(queryType).Respond(query, context)
}

// Confidence is the mean similarity scaled by how many results were found,
// saturating at five results and capped at 1.
func Confidence(results []domain.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	avg := averageSimilarity(results)
	coverage := min(float64(len(results))/confidenceSaturation, 1)
	return min(avg*coverage, 1)
}

func averageSimilarity(results []domain.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Similarity
	}
	return sum / float64(len(results))
}

// proceduralStrategy lists steps found in the context.
type proceduralStrategy struct{}

func (proceduralStrategy) Respond(query, context string) string {
	steps := ExtractSteps(context)
	if len(steps) == 0 {
		return "Based on the available information: " + Summarize(context, SummaryLength)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To %s, follow these steps:\n\n", strings.TrimRight(strings.ToLower(strings.TrimSpace(query)), "?!."))
	for i, step := range steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, step)
	}
	return b.String()
}

// explanatoryStrategy returns causal sentences.
type explanatoryStrategy struct{}

func (explanatoryStrategy) Respond(_, context string) string {
	for _, pattern := range explanationPatterns {
		if matches := pattern.FindAllString(context, -1); len(matches) > 0 {
			return strings.Join(trimAll(matches), " ")
		}
	}
	return Summarize(context, SummaryLength)
}

// temporalStrategy lists times, dates, weekdays and months.
type temporalStrategy struct{}

func (temporalStrategy) Respond(_, context string) string {
	var found []string
	for _, pattern := range timePatterns {
		found = append(found, pattern.FindAllString(context, -1)...)
	}
	if len(found) == 0 {
		return Summarize(context, SummaryLength)
	}
	return "Time information found: " + strings.Join(found, ", ")
}

// locationalStrategy returns every match of the highest-priority location
// pattern found in the context.
type locationalStrategy struct{}

func (locationalStrategy) Respond(_, context string) string {
	for _, pattern := range locationPatterns {
		if matches := pattern.FindAllString(context, -1); len(matches) > 0 {
			return strings.Join(trimAll(matches), " ")
		}
	}
	return Summarize(context, SummaryLength)
}

// summaryStrategy serves factual and general queries.
type summaryStrategy struct{}

func (summaryStrategy) Respond(_, context string) string {
	return Summarize(context, SummaryLength)
}

// ExtractSteps finds numbered items, with their markers stripped, followed by
// sentences introduced by sequencing words. Steps are deduplicated and capped
// at MaxSteps. A sequencing sentence already contained in a numbered item is
// not repeated.
func ExtractSteps(context string) []string {
	var steps []string
	seen := make(map[string]bool)
	add := func(step string) {
		step = strings.TrimSpace(step)
		if step == "" || seen[step] {
			return
		}
		for _, existing := range steps {
			if strings.Contains(existing, step) {
				return
			}
		}
		seen[step] = true
		steps = append(steps, step)
	}

	markers := stepMarker.FindAllStringIndex(context, -1)
	for i, m := range markers {
		end := len(context)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		item := context[m[1]:end]
		if nl := strings.IndexByte(item, '\n'); nl >= 0 {
			item = item[:nl]
		}
		add(item)
	}

	for _, phrase := range sequencePhrase.FindAllString(context, -1) {
		add(phrase)
	}

	if len(steps) > MaxSteps {
		steps = steps[:MaxSteps]
	}
	return steps
}

// Summarize returns context unchanged when it fits in maxLen runes. Longer
// context is cut to whole sentences while the total stays within maxLen. A
// first sentence that alone exceeds maxLen is returned whole rather than cut.
func Summarize(context string, maxLen int) string {
	if utf8.RuneCountInString(context) <= maxLen {
		return context
	}

	var b strings.Builder
	length := 0
	for _, sentence := range sentenceBoundary.Split(context, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		piece := sentence + ". "
		n := utf8.RuneCountInString(sentence) + 1
		if length > 0 && length+n > maxLen {
			break
		}
		b.WriteString(piece)
		length += n + 1
		if length > maxLen {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
