package services

import (
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// classifierRules are checked in order; the first rule with a matching
// keyword decides the type. Matching is by substring of the lowercased query.
var classifierRules = []struct {
	queryType domain.QueryType
	keywords  []string
}{
	{domain.QueryTypeProcedural, []string{"how", "como"}},
	{domain.QueryTypeFactual, []string{"what", "o que"}},
	{domain.QueryTypeExplanatory, []string{"why", "por que"}},
	{domain.QueryTypeTemporal, []string{"when", "quando"}},
	{domain.QueryTypeLocational, []string{"where", "onde"}},
}

// Classify assigns a query type by keyword. Queries that match no rule are general.
func Classify(query string) domain.QueryType {
	q := strings.ToLower(query)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.queryType
			}
		}
	}
	return domain.QueryTypeGeneral
}
